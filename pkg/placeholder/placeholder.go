// Package placeholder generates deterministic placeholder images without any
// network call. It is the terminal provider of every image fallback chain: a
// pure function of the subject name that cannot fail, which is what makes
// chain resolution total.
package placeholder

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Name is the provider identifier reported when a placeholder is served.
const Name = "placeholder"

// palette holds muted heritage-site tones the background color is picked from.
var palette = []string{
	"#8d6e63", "#a1887f", "#6d4c41", "#78909c", "#607d8b",
	"#8e7cc3", "#b45f06", "#38761d", "#134f5c", "#741b47",
}

// ImageURI returns an SVG data URI depicting the subject's initials on a
// color derived from the subject name. The same subject always produces the
// same image.
func ImageURI(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "Heritage Site"
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="640" height="400">`+
			`<rect width="640" height="400" fill="%s"/>`+
			`<text x="320" y="215" font-family="serif" font-size="120" fill="#fff" text-anchor="middle">%s</text>`+
			`</svg>`,
		color(subject), initials(subject))

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// color picks a palette entry from an FNV hash of the subject.
func color(subject string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(subject)))
	return palette[h.Sum32()%uint32(len(palette))]
}

// initials returns up to two uppercase initials from the subject's words.
func initials(subject string) string {
	var out []rune
	for _, word := range strings.Fields(subject) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				out = append(out, unicode.ToUpper(r))
			}
			break
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
