package rule

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-nmd/internal/ident"
	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/resource"
)

// multiImageLine matches one entry of a multi-image block, with an optional
// alignment prefix: ":-" start, ":-:" center, "-:" end.
var multiImageLine = regexp.MustCompile(
	`^\s*(:-:|:-|-:)?\s*!\[([^\]\n]*)\]\(([^)\n]+)\)(?:#([\w\-]+))?(?:\{\{([^}\n]*)\}\})?\s*$`)

var alignSelf = map[string]string{
	":-":  "flex-start",
	":-:": "center",
	"-:":  "flex-end",
}

// imageSpec is one image to render, before source resolution.
type imageSpec struct {
	caption string
	src     string
	id      string
	style   string
}

// Image renders "![caption](src)#id{{style}}" as a figure.
type Image struct {
	re *regexp.Regexp
}

// NewImage returns the single image rule.
func NewImage() *Image {
	m, _ := modifier.Find(modifier.Image)
	return &Image{re: compile(Anchored(m.Pattern))}
}

// IsMatch reports whether content is exactly one image.
func (r *Image) IsMatch(content string) bool {
	return r.re.MatchString(content)
}

// Parse renders the figure. Nothing in the output is rescanned.
func (r *Image) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	m := r.re.FindStringSubmatch(content)
	if m == nil {
		return outcome.NewMutable(content), nil
	}
	spec := imageSpec{caption: m[1], src: m[2], id: m[3], style: m[4]}
	figure, err := renderFigure(spec, "", pc)
	if err != nil {
		return nil, err
	}
	return outcome.NewFixed(figure), nil
}

// AbridgedImage renders "![(src)]#id{{style}}" as a bare image.
type AbridgedImage struct {
	re *regexp.Regexp
}

// NewAbridgedImage returns the abridged image rule.
func NewAbridgedImage() *AbridgedImage {
	m, _ := modifier.Find(modifier.AbridgedImage)
	return &AbridgedImage{re: compile(Anchored(m.Pattern))}
}

// IsMatch reports whether content is exactly one abridged image.
func (r *AbridgedImage) IsMatch(content string) bool {
	return r.re.MatchString(content)
}

// Parse renders the image tag.
func (r *AbridgedImage) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	m := r.re.FindStringSubmatch(content)
	if m == nil {
		return outcome.NewMutable(content), nil
	}
	if pc.Config.FastDraft {
		return outcome.NewFixed(placeholder(m[1], "image abridged-image")), nil
	}
	src, _, err := imageSource(m[1], pc)
	if err != nil {
		return nil, err
	}
	return outcome.NewFixed(`<img src="` + attr(src) + `" class="image abridged-image"` +
		idAttr(m[2]) + styleAttr(m[3]) + ` />`), nil
}

// MultiImage renders "!![justify][[ ... ]]", one image per line, as a flex
// container.
type MultiImage struct {
	re *regexp.Regexp
}

// NewMultiImage returns the multi-image rule.
func NewMultiImage() *MultiImage {
	m, _ := modifier.Find(modifier.MultiImage)
	return &MultiImage{re: compile(Anchored(m.Pattern))}
}

// IsMatch reports whether content is exactly one multi-image block.
func (r *MultiImage) IsMatch(content string) bool {
	return r.re.MatchString(content)
}

// Parse renders every well-formed line as a figure. Other lines are
// skipped with a warning.
func (r *MultiImage) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	m := r.re.FindStringSubmatch(content)
	if m == nil {
		return outcome.NewMutable(content), nil
	}

	justify := m[1]
	if justify == "" {
		justify = pc.Config.MultiImageJustify
	}
	if justify == "" {
		justify = parsing.DefaultImageJustify
	}

	var b strings.Builder
	b.WriteString(`<div class="image-container" style="display: flex; justify-content: ` + attr(justify) + `;">`)
	for _, line := range strings.Split(m[2], "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lm := multiImageLine.FindStringSubmatch(line)
		if lm == nil {
			pc.Logger.Warn("multi-image line is not an image, skipped",
				"document", pc.Location.Document,
				"line", line)
			continue
		}
		spec := imageSpec{caption: lm[2], src: lm[3], id: lm[4], style: lm[5]}
		figure, err := renderFigure(spec, alignSelf[lm[1]], pc)
		if err != nil {
			return nil, err
		}
		b.WriteString(figure)
	}
	b.WriteString(`</div>`)
	return outcome.NewFixed(b.String()), nil
}

// renderFigure renders one captioned image. alignment, when set, becomes
// the figure's align-self.
func renderFigure(spec imageSpec, alignment string, pc *parsing.Context) (string, error) {
	style := spec.style
	if alignment != "" {
		style = strings.TrimSpace("align-self: " + alignment + "; " + style)
	}

	resolved := true
	var img string
	if pc.Config.FastDraft {
		img = placeholder(spec.src, "image image-placeholder")
	} else {
		src, ok, err := imageSource(spec.src, pc)
		if err != nil {
			return "", err
		}
		resolved = ok
		img = `<img src="` + attr(src) + `" alt="` + attr(spec.caption) + `" class="image" />`
	}

	// An unresolved image gets no derived id, so references to it stay dangling.
	id := spec.id
	if id == "" && resolved {
		id = ident.Image(pc.Location.Document, spec.caption)
	}

	var b strings.Builder
	b.WriteString(`<figure class="figure"` + idAttr(id) + styleAttr(style) + `>`)
	b.WriteString(img)
	if spec.caption != "" {
		b.WriteString(`<figcaption class="image-caption">` + attr(spec.caption) + `</figcaption>`)
	}
	b.WriteString(`</figure>`)
	return b.String(), nil
}

func placeholder(src, class string) string {
	return `<img class="` + class + `" src="" data-src="` + attr(src) + `" />`
}

// imageSource turns a written source into the value of the src attribute:
// a data URI when embedded, a file URL for local images otherwise, the
// source itself for remote images. resolved is false when a lenient
// configuration fell back to the raw source.
func imageSource(raw string, pc *parsing.Context) (src string, resolved bool, err error) {
	res, err := resource.Resolve(raw, pc.Config.InputLocation)
	if err != nil {
		if pc.Config.StrictImageSrcCheck {
			return "", false, fmt.Errorf("%w: %w", parsing.ErrInvalidSource, err)
		}
		pc.Logger.SourceUnresolved(pc.Location.Document, raw, err)
		return raw, false, nil
	}

	if res.Kind == resource.Remote {
		if pc.Config.EmbedRemoteImage && !strings.HasPrefix(res.Raw, "data:") {
			pc.Logger.RemoteNotEmbedded(pc.Location.Document, res.Raw)
		}
		return res.Raw, true, nil
	}

	if !pc.Config.EmbedLocalImage {
		return fileURL(res.Path), true, nil
	}
	uri, err := pc.Images.Embed(res.Path, pc.Config.CompressEmbeddedImage)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", parsing.ErrResource, err)
	}
	return uri, true, nil
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}

// Compile-time interface checks.
var (
	_ Rule = (*Image)(nil)
	_ Rule = (*AbridgedImage)(nil)
	_ Rule = (*MultiImage)(nil)
)
