// Package manifest defines the canonical web-application manifest model and
// normalizes both supported source formats into it.
//
// Two source formats are recognized: the W3C web-app manifest, which maps
// onto the canonical model directly, and the Chrome hosted-app manifest,
// which is converted (launch URL resolution, locale message substitution,
// icon map flattening, URL whitelist expansion). Detection is by shape: a
// top-level "app" object marks a Chrome manifest.
package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"appxify/internal/access"
	"appxify/internal/textutil"
)

// Format identifies the source manifest flavor.
type Format int

const (
	FormatW3C Format = iota
	FormatChrome
)

// String implements fmt.Stringer for log output.
func (f Format) String() string {
	if f == FormatChrome {
		return "chrome"
	}
	return "w3c"
}

// Icon is one declared icon asset. Src is a path relative to the asset
// root; Sizes is the "WxH" dimension string.
type Icon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
}

// Manifest is the canonical, format-agnostic model every conversion
// normalizes into before rendering.
type Manifest struct {
	Language        string
	Name            string
	ShortName       string
	Description     string
	StartURL        string
	Scope           string
	Display         string
	Orientation     string
	ThemeColor      string
	BackgroundColor string
	StoreVersion    string
	Icons           []Icon
	AccessRules     []access.Rule
}

// Default values applied to Chrome conversions eagerly and to W3C
// manifests lazily at render time.
const (
	DefaultLanguage        = "en-us"
	DefaultOrientation     = "portrait"
	DefaultThemeColor      = "aliceBlue"
	DefaultBackgroundColor = "gray"
)

type w3cDocument struct {
	Lang            string        `json:"lang"`
	Name            string        `json:"name"`
	ShortName       string        `json:"short_name"`
	Description     string        `json:"description"`
	StartURL        string        `json:"start_url"`
	Scope           string        `json:"scope"`
	Display         string        `json:"display"`
	Orientation     string        `json:"orientation"`
	ThemeColor      string        `json:"theme_color"`
	BackgroundColor string        `json:"background_color"`
	Icons           []Icon        `json:"icons"`
	AccessWhitelist []access.Rule `json:"mjs_access_whitelist"`
}

// Detect reports the source format of the raw manifest JSON.
func Detect(raw []byte) (Format, error) {
	var probe struct {
		App json.RawMessage `json:"app"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return FormatW3C, fmt.Errorf("parse manifest: %w", err)
	}
	if len(probe.App) > 0 && string(probe.App) != "null" {
		return FormatChrome, nil
	}
	return FormatW3C, nil
}

// Normalize converts raw manifest JSON into the canonical model. The asset
// root is consulted for Chrome locale message files. W3C manifests pass
// through with their declared values; defaulting for them happens at render
// time.
func Normalize(raw []byte, assetRoot string) (*Manifest, Format, error) {
	format, err := Detect(raw)
	if err != nil {
		return nil, FormatW3C, err
	}

	if format == FormatChrome {
		m, err := normalizeChrome(raw, assetRoot)
		if err != nil {
			return nil, FormatChrome, err
		}
		return m, FormatChrome, nil
	}

	var doc w3cDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, FormatW3C, fmt.Errorf("parse manifest: %w", err)
	}
	m := &Manifest{
		Language:        doc.Lang,
		Name:            doc.Name,
		ShortName:       doc.ShortName,
		Description:     doc.Description,
		StartURL:        strings.TrimSpace(doc.StartURL),
		Scope:           doc.Scope,
		Display:         doc.Display,
		Orientation:     doc.Orientation,
		ThemeColor:      doc.ThemeColor,
		BackgroundColor: doc.BackgroundColor,
		Icons:           doc.Icons,
		AccessRules:     access.Dedupe(doc.AccessWhitelist),
	}
	return m, FormatW3C, nil
}

// CanonicalLanguage normalizes a BCP-47 language tag to the lowercase form
// the descriptor uses. Unparseable tags are returned as given so the
// manifest author's value still surfaces in the output.
func CanonicalLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return strings.ToLower(parsed.String())
}

// EffectiveLanguage resolves the descriptor language for the manifest,
// falling back to the default when none is declared.
func (m *Manifest) EffectiveLanguage() string {
	return textutil.FirstNonEmpty(CanonicalLanguage(m.Language), DefaultLanguage)
}
