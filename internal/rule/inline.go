package rule

import (
	"strings"

	"github.com/alnah/go-nmd/internal/parsing"
)

// greekLetters maps NMD letter names, and their Latin single-letter
// shortcuts, to HTML entities.
var greekLetters = map[string]string{
	"alpha": "&alpha;", "beta": "&beta;", "gamma": "&gamma;", "delta": "&delta;",
	"epsilon": "&epsilon;", "zeta": "&zeta;", "eta": "&eta;", "theta": "&theta;",
	"iota": "&iota;", "kappa": "&kappa;", "lambda": "&lambda;", "mu": "&mu;",
	"nu": "&nu;", "xi": "&xi;", "omicron": "&omicron;", "pi": "&pi;",
	"rho": "&rho;", "sigma": "&sigma;", "tau": "&tau;", "upsilon": "&upsilon;",
	"phi": "&phi;", "chi": "&chi;", "psi": "&psi;", "omega": "&omega;",

	"Alpha": "&Alpha;", "Beta": "&Beta;", "Gamma": "&Gamma;", "Delta": "&Delta;",
	"Epsilon": "&Epsilon;", "Zeta": "&Zeta;", "Eta": "&Eta;", "Theta": "&Theta;",
	"Iota": "&Iota;", "Kappa": "&Kappa;", "Lambda": "&Lambda;", "Mu": "&Mu;",
	"Nu": "&Nu;", "Xi": "&Xi;", "Omicron": "&Omicron;", "Pi": "&Pi;",
	"Rho": "&Rho;", "Sigma": "&Sigma;", "Tau": "&Tau;", "Upsilon": "&Upsilon;",
	"Phi": "&Phi;", "Chi": "&Chi;", "Psi": "&Psi;", "Omega": "&Omega;",

	"a": "&alpha;", "b": "&beta;", "g": "&gamma;", "d": "&delta;",
	"e": "&epsilon;", "z": "&zeta;", "h": "&eta;", "q": "&theta;",
	"i": "&iota;", "k": "&kappa;", "l": "&lambda;", "m": "&mu;",
	"n": "&nu;", "x": "&xi;", "o": "&omicron;", "p": "&pi;",
	"r": "&rho;", "s": "&sigma;", "t": "&tau;", "u": "&upsilon;",
	"f": "&phi;", "c": "&chi;", "y": "&psi;", "w": "&omega;",

	"A": "&Alpha;", "B": "&Beta;", "G": "&Gamma;", "D": "&Delta;",
	"E": "&Epsilon;", "Z": "&Zeta;", "H": "&Eta;", "Q": "&Theta;",
	"I": "&Iota;", "K": "&Kappa;", "L": "&Lambda;", "M": "&Mu;",
	"N": "&Nu;", "X": "&Xi;", "O": "&Omicron;", "P": "&Pi;",
	"R": "&Rho;", "S": "&Sigma;", "T": "&Tau;", "U": "&Upsilon;",
	"F": "&Phi;", "C": "&Chi;", "Y": "&Psi;", "W": "&Omega;",
}

// GreekLetter builds the entity of "%name%". Unknown names render as written.
func GreekLetter(m Match, _ *parsing.Context) (string, error) {
	if entity, ok := greekLetters[m.Group(1)]; ok {
		return entity, nil
	}
	return attr(m.Group(0)), nil
}

// Emoji builds the icon element of ":name:".
func Emoji(m Match, _ *parsing.Context) (string, error) {
	name := attr(m.Group(1))
	return `<i class="em-svg em-` + name + `" aria-role="presentation" aria-label="` + name + `"></i>`, nil
}

// AbridgedStyle expands "color;background;font" into CSS declarations.
// Empty fields are skipped; "[text]{red}" only sets the color.
func AbridgedStyle(abridged string) string {
	props := [...]string{"color", "background-color", "font-family"}
	fields := strings.SplitN(abridged, ";", len(props))

	var decls []string
	for i, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			decls = append(decls, props[i]+": "+f+";")
		}
	}
	return strings.Join(decls, " ")
}

// AbridgedStyleAttr builds the escaped style value of an abridged style
// captured in group i.
func AbridgedStyleAttr(i int) BuildFunc {
	return func(m Match, _ *parsing.Context) (string, error) {
		return attr(AbridgedStyle(m.Group(i))), nil
	}
}

// Escaped builds the HTML-escaped text of capture group i.
func Escaped(i int) BuildFunc {
	return func(m Match, _ *parsing.Context) (string, error) {
		return attr(m.Group(i)), nil
	}
}

// Href builds a link target from capture group i, resolving references.
func Href(i int) BuildFunc {
	return func(m Match, pc *parsing.Context) (string, error) {
		return LinkHref(m.Group(i), pc)
	}
}
