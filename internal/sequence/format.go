package sequence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel is rendered for codes no recognized pattern can parse.
const Sentinel = "----/--"

// Format renders the canonical display form: 4-digit sequence, 2-digit year.
func Format(seq, year int) string {
	return fmt.Sprintf("%04d/%02d", seq, year%100)
}

// matcher recognizes one legacy or canonical textual code form and yields
// the (sequence, year) pair it embeds.
type matcher struct {
	name string
	re   *regexp.Regexp
	conv func(groups []string, ref time.Time) (seq, year int, ok bool)
}

// matchers are tried in order; the first hit wins. New legacy forms are
// added at the end so existing precedence never shifts.
var matchers = []matcher{
	{
		name: "canonical",
		re:   regexp.MustCompile(`^(\d{1,4})/(\d{2})$`),
		conv: func(g []string, _ time.Time) (int, int, bool) {
			seq, err1 := strconv.Atoi(g[1])
			year, err2 := strconv.Atoi(g[2])
			return seq, year, err1 == nil && err2 == nil
		},
	},
	{
		name: "plain integer",
		re:   regexp.MustCompile(`^(\d{1,6})$`),
		conv: func(g []string, ref time.Time) (int, int, bool) {
			seq, err := strconv.Atoi(g[1])
			return seq, ref.Year() % 100, err == nil
		},
	},
	{
		name: "prefixed legacy",
		re:   regexp.MustCompile(`^[A-Z]{1,4}-(\d{1,4})-(\d{2})$`),
		conv: func(g []string, _ time.Time) (int, int, bool) {
			seq, err1 := strconv.Atoi(g[1])
			year, err2 := strconv.Atoi(g[2])
			return seq, year, err1 == nil && err2 == nil
		},
	},
}

// fallbackRe matches locally generated fallback codes, which display as-is.
var fallbackRe = regexp.MustCompile(`^TMP-[0-9A-F]{8}/\d{2}$`)

// Canonical normalizes any recognized textual code into the display form.
// The reference time supplies the year for forms that do not embed one.
// Unrecognized input renders as the sentinel instead of failing.
func Canonical(raw string, ref time.Time) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Sentinel
	}
	if fallbackRe.MatchString(s) {
		return s
	}
	for _, m := range matchers {
		g := m.re.FindStringSubmatch(s)
		if g == nil {
			continue
		}
		seq, year, ok := m.conv(g, ref)
		if !ok {
			continue
		}
		return Format(seq, year)
	}
	return Sentinel
}
