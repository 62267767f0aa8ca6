package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"appxify/internal/access"
	"appxify/internal/converr"
	"appxify/internal/textutil"
)

const localAppScheme = "ms-appx-web:///"

type chromeDocument struct {
	Name          string            `json:"name"`
	ShortName     string            `json:"short_name"`
	Description   string            `json:"description"`
	Version       string            `json:"version"`
	DefaultLocale string            `json:"default_locale"`
	Icons         map[string]string `json:"icons"`
	App           struct {
		Launch struct {
			WebURL    string `json:"web_url"`
			LocalPath string `json:"local_path"`
		} `json:"launch"`
		URLs []string `json:"urls"`
	} `json:"app"`
}

func normalizeChrome(raw []byte, assetRoot string) (*Manifest, error) {
	var doc chromeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	webURL := strings.TrimSpace(doc.App.Launch.WebURL)
	localPath := strings.TrimSpace(doc.App.Launch.LocalPath)

	startURL := webURL
	if startURL == "" {
		if localPath == "" {
			return nil, converr.LaunchURLNotSpecified()
		}
		startURL = localAppScheme + strings.TrimPrefix(localPath, "/")
	}

	m := &Manifest{
		Language:     doc.DefaultLocale,
		Name:         doc.Name,
		ShortName:    doc.ShortName,
		Description:  doc.Description,
		StartURL:     startURL,
		StoreVersion: doc.Version,
		Icons:        chromeIcons(doc.Icons),
	}

	if doc.DefaultLocale != "" {
		if messages := loadLocaleMessages(assetRoot, doc.DefaultLocale); messages != nil {
			substituteMessages(m, messages)
		}
	}

	m.Language = textutil.FirstNonEmpty(CanonicalLanguage(m.Language), DefaultLanguage)
	m.ShortName = textutil.FirstNonEmpty(m.ShortName, m.Name)
	m.Orientation = textutil.FirstNonEmpty(m.Orientation, DefaultOrientation)
	m.ThemeColor = textutil.FirstNonEmpty(m.ThemeColor, DefaultThemeColor)
	m.BackgroundColor = textutil.FirstNonEmpty(m.BackgroundColor, DefaultBackgroundColor)

	rules, err := chromeAccessRules(webURL, doc.App.URLs)
	if err != nil {
		return nil, err
	}
	m.AccessRules = rules

	return m, nil
}

// chromeIcons flattens the Chrome size→path icon map into the canonical
// list, ordered by ascending pixel size so selection ties stay stable.
func chromeIcons(icons map[string]string) []Icon {
	sizes := make([]string, 0, len(icons))
	for size := range icons {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool {
		a, errA := strconv.Atoi(sizes[i])
		b, errB := strconv.Atoi(sizes[j])
		if errA != nil || errB != nil {
			return sizes[i] < sizes[j]
		}
		return a < b
	})

	out := make([]Icon, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, Icon{Src: icons[size], Sizes: size + "x" + size})
	}
	return out
}

// chromeAccessRules expands the effective URL set into whitelist entries.
// The start URL participates only when it is a real web URL; a packaged
// local launch page is not a network origin.
func chromeAccessRules(webURL string, urls []string) ([]access.Rule, error) {
	effective := make([]string, 0, len(urls)+1)
	if webURL != "" {
		effective = append(effective, webURL)
	}
	effective = append(effective, urls...)

	rules := make([]access.Rule, 0, len(effective)*4)
	for _, raw := range effective {
		expanded, err := access.ExpandURL(raw)
		if err != nil {
			return nil, err
		}
		rules = append(rules, expanded...)
	}
	return access.Dedupe(rules), nil
}

type localeMessage struct {
	Message string `json:"message"`
}

// loadLocaleMessages reads _locales/<locale>/messages.json under the asset
// root. Returns nil when the file is absent or unreadable; locale
// substitution is best-effort by contract.
func loadLocaleMessages(assetRoot, locale string) map[string]string {
	path := filepath.Join(assetRoot, "_locales", locale, "messages.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var entries map[string]localeMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	out := make(map[string]string, len(entries))
	for key, entry := range entries {
		out[strings.ToLower(key)] = entry.Message
	}
	return out
}

const messagePrefix = "__msg_"

// localizableFields is the ordered list of canonical string fields that may
// carry a __MSG_<key>__ placeholder.
func localizableFields(m *Manifest) []*string {
	return []*string{
		&m.Language,
		&m.Name,
		&m.ShortName,
		&m.Description,
		&m.StartURL,
		&m.Scope,
		&m.Display,
		&m.Orientation,
		&m.ThemeColor,
		&m.BackgroundColor,
	}
}

func substituteMessages(m *Manifest, messages map[string]string) {
	for _, field := range localizableFields(m) {
		value := *field
		if len(value) <= len(messagePrefix)+2 {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(value), messagePrefix) || !strings.HasSuffix(value, "__") {
			continue
		}
		key := strings.ToLower(value[len(messagePrefix) : len(value)-2])
		if text, ok := messages[key]; ok {
			*field = strings.TrimSpace(text)
		}
	}
}
