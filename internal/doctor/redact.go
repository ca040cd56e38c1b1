package doctor

import (
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// SecretKeyWords are key name segments that mark a value as sensitive
// wherever they appear: "HASHNODE_TOKEN", "platforms.hashnode.token" and
// "Authorization" all match. Keys are split on punctuation and camel case
// and matched case-insensitively.
var SecretKeyWords = []string{
	"TOKEN",
	"TOKENS",
	"SECRET",
	"PASSWORD",
	"PASSWD",
	"AUTH",
	"AUTHORIZATION",
	"CREDENTIAL",
	"CREDENTIALS",
	"PRIVATE",
	"APIKEY",
}

// secretKeyPhrases are runs of segments that are only sensitive together.
var secretKeyPhrases = [][]string{
	{"PUBLICATION", "ID"},
}

// TokenPrefixes contains known token prefixes that mark a value as sensitive
// regardless of key name. CI runners commonly expose GitHub and Slack tokens
// next to the publishing secrets.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token (GITHUB_TOKEN in Actions)
	"github_pat_",
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts credentials from notification and endpoint URLs.
//
// Embedded passwords (user:pass@host) and token-style usernames
// (discord://token@id) are masked. Non-HTTP schemes carry tokens in the
// path (slack://a/b/c), so their path is replaced entirely. URLs that cannot
// be parsed are masked as a whole.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return MaskValue(rawURL)
	}

	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
		} else if name := parsed.User.Username(); name != "" {
			parsed.User = url.User(MaskValue(name))
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" && strings.Trim(parsed.Path, "/") != "" {
		parsed.Path = "/****"
		parsed.RawPath = "/****"
	}
	parsed.RawQuery = ""

	// url.String escapes '*' inside userinfo.
	return strings.ReplaceAll(parsed.String(), "%2A", "*")
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// KEY only counts as a qualifier ("api_key", "DEVTO_API_KEY", "apiKey"), so a
// bare "key" attribute is left alone.
func ShouldMask(key string) bool {
	segments := keySegments(key)
	for i, seg := range segments {
		if slices.Contains(SecretKeyWords, seg) {
			return true
		}
		if seg == "KEY" && len(segments) > 1 {
			return true
		}
		for _, phrase := range secretKeyPhrases {
			if i+len(phrase) <= len(segments) && slices.Equal(segments[i:i+len(phrase)], phrase) {
				return true
			}
		}
	}
	return false
}

// keySegments splits a key name into upper-cased words at punctuation and
// lower-to-upper case changes: "X-Api-Key" and "apiKey" both end in "KEY".
func keySegments(key string) []string {
	var segments []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			segments = append(segments, strings.ToUpper(string(cur)))
			cur = cur[:0]
		}
	}

	var prev rune
	for _, r := range key {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return segments
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
