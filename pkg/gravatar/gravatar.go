// Package gravatar builds avatar image URLs for an email-like identifier.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

// Options mirrors the knobs of the Gravatar image API
type Options struct {
	Size         int
	Rating       string
	Default      string
	ForceDefault bool
	ForceLower   bool
	UseSSL       bool
	BaseURL      string // overrides the scheme+host when set
}

// DefaultOptions are the settings the site renders comment avatars with
var DefaultOptions = Options{
	Size:    100,
	Rating:  "g",
	Default: "retro",
}

// URL returns the avatar URL for identifier. It is a pure function.
func URL(identifier string, opts Options) string {
	if opts.ForceLower {
		identifier = strings.ToLower(identifier)
	}
	sum := md5.Sum([]byte(identifier))

	base := opts.BaseURL
	if base == "" {
		base = "http://www.gravatar.com/avatar/"
		if opts.UseSSL {
			base = "https://secure.gravatar.com/avatar/"
		}
	}

	q := url.Values{}
	q.Set("s", strconv.Itoa(opts.Size))
	q.Set("d", opts.Default)
	q.Set("r", opts.Rating)
	if opts.ForceDefault {
		q.Set("f", "y")
	}

	return base + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
