// Package descriptor assembles the final package descriptor from a source
// manifest: it drives normalization, icon resolution, and access-rule
// construction, then renders the canonical XML document.
package descriptor

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"appxify/internal/access"
	"appxify/internal/assets"
	"appxify/internal/converr"
	"appxify/internal/identity"
	"appxify/internal/logging"
	"appxify/internal/manifest"
	"appxify/internal/textutil"
	"appxify/internal/urlkit"
)

// productIDNamespace seeds the stable per-identity product id. Changing it
// would change the generated id of every existing package.
var productIDNamespace = uuid.MustParse("8e2e1f0d-0b1f-4f3a-9db3-4c91b4f0ab5d")

// Identity carries the caller-supplied package-identity attributes. These
// come from configuration or flags, never from the manifest.
type Identity struct {
	Name                 string
	Publisher            string
	PublisherDisplayName string
}

// Result is the outcome of one conversion. It is immutable once returned.
type Result struct {
	Manifest *manifest.Manifest
	Format   manifest.Format
	Assets   *assets.Set
	Rules    []access.Rule
	XML      []byte
}

// Assembler converts manifests rooted at one asset directory. Every Convert
// call is independent; the assembler holds no per-conversion state.
type Assembler struct {
	root        string
	logger      *slog.Logger
	resolver    *assets.Resolver
	toolVersion string
	now         func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger attaches a logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithToolVersion sets the tool version recorded in the descriptor's build
// metadata.
func WithToolVersion(version string) Option {
	return func(a *Assembler) {
		if version != "" {
			a.toolVersion = version
		}
	}
}

// WithDryRun disables icon synthesis; selection is still computed.
func WithDryRun() Option {
	return func(a *Assembler) {
		a.resolver = assets.NewResolver(a.root, assets.WithDryRun())
	}
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Assembler for manifests whose assets live under root.
func New(root string, opts ...Option) *Assembler {
	a := &Assembler{
		root:        root,
		logger:      logging.NewNop(),
		resolver:    assets.NewResolver(root),
		toolVersion: "devel",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Convert turns raw manifest JSON and the caller's identity attributes into
// a rendered package descriptor. The first validation failure aborts the
// conversion; no partial descriptor is returned.
func (a *Assembler) Convert(manifestJSON []byte, id Identity) (*Result, error) {
	m, format, err := manifest.Normalize(manifestJSON, a.root)
	if err != nil {
		return nil, err
	}
	a.logger.Info("normalized manifest", slog.String("format", format.String()), slog.String("start_url", m.StartURL))

	if strings.TrimSpace(m.StartURL) == "" {
		return nil, converr.StartURLNotSpecified()
	}
	if len(m.Icons) == 0 {
		return nil, converr.NoIconsFound()
	}

	set, err := a.resolver.Resolve(m.Icons)
	if err != nil {
		return nil, err
	}
	for _, resolved := range set.All() {
		a.logger.Debug("resolved icon slot",
			slog.String("slot", resolved.Slot.Name),
			slog.String("path", resolved.Path),
			slog.Bool("synthesized", resolved.Synthesized))
	}

	rules, err := a.buildRules(m)
	if err != nil {
		return nil, err
	}

	doc := a.buildDocument(m, id, set, rules)
	rendered, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render descriptor: %w", err)
	}
	rendered = append([]byte(xml.Header), rendered...)

	return &Result{
		Manifest: m,
		Format:   format,
		Assets:   set,
		Rules:    rules,
		XML:      rendered,
	}, nil
}

// buildRules computes the final ordered access-rule list. A packaged local
// start page has no network origin, so it contributes no base scope rule.
func (a *Assembler) buildRules(m *manifest.Manifest) ([]access.Rule, error) {
	if urlkit.Parse(m.StartURL).DomainName == "" {
		if strings.HasPrefix(m.StartURL, "ms-appx-web://") {
			rules := make([]access.Rule, 0, len(m.AccessRules))
			for _, r := range m.AccessRules {
				if r.URL == "*" {
					continue
				}
				if r.APIAccess == "" {
					r.APIAccess = access.DefaultAPIAccess
				}
				rules = append(rules, r)
			}
			return rules, nil
		}
		return nil, converr.DomainParsingFailed(m.StartURL)
	}

	base, err := access.ResolveScope(m.StartURL, m.Scope)
	if err != nil {
		return nil, err
	}
	return access.Merge(m.AccessRules, base), nil
}

func (a *Assembler) buildDocument(m *manifest.Manifest, id Identity, set *assets.Set, rules []access.Rule) Document {
	displayName := textutil.FirstNonEmpty(m.ShortName, m.Name)
	appID := identity.Sanitize(displayName)

	uriRules := make([]ContentURIRule, 0, len(rules))
	for _, r := range rules {
		uriRules = append(uriRules, ContentURIRule{
			Type:                 "include",
			Match:                r.URL,
			WindowsRuntimeAccess: r.APIAccess,
		})
	}

	return Document{
		Xmlns:               nsFoundation,
		XmlnsUAP:            nsUAP,
		XmlnsMP:             nsMobile,
		XmlnsBuild:          nsBuild,
		IgnorableNamespaces: "uap mp build",
		Identity: IdentityElement{
			Name:      id.Name,
			Publisher: id.Publisher,
			Version:   textutil.FirstNonEmpty(m.StoreVersion, "1.0.0.0"),
		},
		PhoneIdentity: PhoneIdentity{
			PhoneProductID:   uuid.NewSHA1(productIDNamespace, []byte(id.Name)).String(),
			PhonePublisherID: zeroPublisherID,
		},
		Metadata: BuildMetadata{
			Items: []BuildItem{
				{Name: "GeneratedFrom", Value: sourceProduct},
				{Name: "GenerationDate", Value: a.now().UTC().Format(time.RFC3339)},
				{Name: "ToolVersion", Value: a.toolVersion},
			},
		},
		Properties: Properties{
			DisplayName:          displayName,
			PublisherDisplayName: id.PublisherDisplayName,
			Logo:                 set.StoreLogo.Path,
		},
		Resources: Resources{
			Resource: []Resource{{Language: m.EffectiveLanguage()}},
		},
		Applications: Applications{
			Application: Application{
				ID:              appID,
				StartPage:       m.StartURL,
				ContentURIRules: ContentURIRules{Rules: uriRules},
				VisualElements: VisualElements{
					DisplayName:     displayName,
					Description:     textutil.FirstNonEmpty(m.Description, displayName),
					BackgroundColor: textutil.FirstNonEmpty(m.BackgroundColor, manifest.DefaultBackgroundColor),
					Square150Logo:   set.LargeLogo.Path,
					Square44Logo:    set.SmallLogo.Path,
					SplashScreen:    SplashScreen{Image: set.SplashScreen.Path},
					Rotation: RotationPrefs{
						Rotations: rotationPreferences(textutil.FirstNonEmpty(m.Orientation, manifest.DefaultOrientation)),
					},
				},
			},
		},
		Capabilities: fixedCapabilities(),
	}
}
