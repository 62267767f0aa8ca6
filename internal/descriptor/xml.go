package descriptor

import "encoding/xml"

// Namespace URIs and fixed values baked into every rendered descriptor.
const (
	nsFoundation = "http://schemas.microsoft.com/appx/manifest/foundation/windows10"
	nsUAP        = "http://schemas.microsoft.com/appx/manifest/uap/windows10"
	nsMobile     = "http://schemas.microsoft.com/appx/manifest/mobile/windows10"
	nsBuild      = "http://schemas.microsoft.com/developer/appx/2015/build"

	zeroPublisherID = "00000000-0000-0000-0000-000000000000"
	sourceProduct   = "appxify"
)

// Document is the package descriptor rendered to XML. Construction goes
// through struct marshaling only, so every text node and attribute passes
// through one escaping path.
type Document struct {
	XMLName             xml.Name `xml:"Package"`
	Xmlns               string   `xml:"xmlns,attr"`
	XmlnsUAP            string   `xml:"xmlns:uap,attr"`
	XmlnsMP             string   `xml:"xmlns:mp,attr"`
	XmlnsBuild          string   `xml:"xmlns:build,attr"`
	IgnorableNamespaces string   `xml:"IgnorableNamespaces,attr"`

	Identity      IdentityElement `xml:"Identity"`
	PhoneIdentity PhoneIdentity   `xml:"mp:PhoneIdentity"`
	Metadata      BuildMetadata   `xml:"build:Metadata"`
	Properties    Properties      `xml:"Properties"`
	Resources     Resources       `xml:"Resources"`
	Applications  Applications    `xml:"Applications"`
	Capabilities  Capabilities    `xml:"Capabilities"`
}

// IdentityElement is the package identity block.
type IdentityElement struct {
	Name      string `xml:"Name,attr"`
	Publisher string `xml:"Publisher,attr"`
	Version   string `xml:"Version,attr"`
}

// PhoneIdentity carries the generated stable product id.
type PhoneIdentity struct {
	PhoneProductID   string `xml:"PhoneProductId,attr"`
	PhonePublisherID string `xml:"PhonePublisherId,attr"`
}

// BuildMetadata records how and when the descriptor was generated.
type BuildMetadata struct {
	Items []BuildItem `xml:"build:Item"`
}

// BuildItem is one name/value metadata pair.
type BuildItem struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

// Properties is the package display-properties block.
type Properties struct {
	DisplayName          string `xml:"DisplayName"`
	PublisherDisplayName string `xml:"PublisherDisplayName"`
	Logo                 string `xml:"Logo"`
}

// Resources declares the package resource languages.
type Resources struct {
	Resource []Resource `xml:"Resource"`
}

// Resource is one resource-language entry.
type Resource struct {
	Language string `xml:"Language,attr"`
}

// Applications wraps the single application entry.
type Applications struct {
	Application Application `xml:"Application"`
}

// Application describes the hosted web application.
type Application struct {
	ID              string          `xml:"Id,attr"`
	StartPage       string          `xml:"StartPage,attr"`
	ContentURIRules ContentURIRules `xml:"uap:ApplicationContentUriRules"`
	VisualElements  VisualElements  `xml:"uap:VisualElements"`
}

// ContentURIRules is the ordered access-rule list.
type ContentURIRules struct {
	Rules []ContentURIRule `xml:"uap:Rule"`
}

// ContentURIRule grants or withholds native API access for one origin
// pattern.
type ContentURIRule struct {
	Type                 string `xml:"Type,attr"`
	Match                string `xml:"Match,attr"`
	WindowsRuntimeAccess string `xml:"WindowsRuntimeAccess,attr"`
}

// VisualElements is the application's visual-elements block.
type VisualElements struct {
	DisplayName     string        `xml:"DisplayName,attr"`
	Description     string        `xml:"Description,attr"`
	BackgroundColor string        `xml:"BackgroundColor,attr"`
	Square150Logo   string        `xml:"Square150x150Logo,attr"`
	Square44Logo    string        `xml:"Square44x44Logo,attr"`
	SplashScreen    SplashScreen  `xml:"uap:SplashScreen"`
	Rotation        RotationPrefs `xml:"uap:InitialRotationPreference"`
}

// SplashScreen references the splash image asset.
type SplashScreen struct {
	Image string `xml:"Image,attr"`
}

// RotationPrefs lists the allowed display rotations.
type RotationPrefs struct {
	Rotations []Rotation `xml:"uap:Rotation"`
}

// Rotation is one allowed rotation.
type Rotation struct {
	Preference string `xml:"Preference,attr"`
}

// Capabilities is the fixed capability list. It is not derived from the
// manifest.
type Capabilities struct {
	Capability       []Capability `xml:"Capability"`
	DeviceCapability []Capability `xml:"DeviceCapability"`
}

// Capability names one declared capability.
type Capability struct {
	Name string `xml:"Name,attr"`
}

func fixedCapabilities() Capabilities {
	return Capabilities{
		Capability: []Capability{
			{Name: "internetClient"},
			{Name: "privateNetworkClientServer"},
		},
		DeviceCapability: []Capability{
			{Name: "microphone"},
			{Name: "location"},
			{Name: "webcam"},
		},
	}
}

// rotationPreferences maps a manifest orientation onto the descriptor's
// rotation list.
func rotationPreferences(orientation string) []Rotation {
	switch orientation {
	case "landscape":
		return []Rotation{{Preference: "landscape"}, {Preference: "landscapeFlipped"}}
	case "landscape-primary":
		return []Rotation{{Preference: "landscape"}}
	case "landscape-secondary":
		return []Rotation{{Preference: "landscapeFlipped"}}
	case "portrait-primary":
		return []Rotation{{Preference: "portrait"}}
	case "portrait-secondary":
		return []Rotation{{Preference: "portraitFlipped"}}
	case "any", "natural":
		return []Rotation{
			{Preference: "portrait"},
			{Preference: "landscape"},
			{Preference: "portraitFlipped"},
			{Preference: "landscapeFlipped"},
		}
	default:
		return []Rotation{{Preference: "portrait"}, {Preference: "portraitFlipped"}}
	}
}
