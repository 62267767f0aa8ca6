// Package converr defines the structured error catalog for manifest
// conversion. Every failure the pipeline can surface carries a stable
// numeric code, a symbolic type, a severity, and positional parameters
// substituted into the message template at presentation time.
package converr

import "fmt"

// Severity classifies how a conversion error should be treated by callers.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Catalog codes. Values are part of the tool's public contract and must not
// be renumbered.
const (
	CodeManifestNotFound                      = 1
	CodeStartURLNotSpecified                  = 2
	CodeAppxCreationFailed                    = 3
	CodeLaunchURLNotSpecified                 = 4
	CodeDomainParsingFailed                   = 5
	CodeNoIconsFound                          = 6
	CodeRelativePathReferencesParentDirectory = 7
	CodeRelativePathExpected                  = 8
	CodeUnsupportedProtocolInAcur             = 9
	CodeIconNotFound                          = 10
)

// Error is a catalog entry bound to its positional parameters. The message
// template is rendered lazily so the error stays structured for inspection
// and tests.
type Error struct {
	Code     int
	Type     string
	Severity Severity
	Params   []string

	template string
}

// Error renders the templated message with the positional parameters.
func (e *Error) Error() string {
	args := make([]any, len(e.Params))
	for i, p := range e.Params {
		args[i] = p
	}
	return fmt.Sprintf(e.template, args...)
}

func newError(code int, kind, template string, params ...string) *Error {
	return &Error{
		Code:     code,
		Type:     kind,
		Severity: SeverityError,
		Params:   params,
		template: template,
	}
}

// ManifestNotFound reports a manifest file missing at the given path.
func ManifestNotFound(path string) *Error {
	return newError(CodeManifestNotFound, "ManifestNotFound", "manifest file not found: %s", path)
}

// StartURLNotSpecified reports a manifest with no resolvable start URL.
func StartURLNotSpecified() *Error {
	return newError(CodeStartURLNotSpecified, "StartUrlNotSpecified", "manifest does not specify a start URL")
}

// AppxCreationFailed reports a failed external packager invocation.
func AppxCreationFailed(detail string) *Error {
	return newError(CodeAppxCreationFailed, "AppxCreationFailed", "package creation failed: %s", detail)
}

// LaunchURLNotSpecified reports a Chrome manifest declaring neither a web
// nor a local launch target.
func LaunchURLNotSpecified() *Error {
	return newError(CodeLaunchURLNotSpecified, "LaunchUrlNotSpecified", "manifest specifies neither a web nor a local launch URL")
}

// DomainParsingFailed reports a declared URL that could not be decomposed
// into a domain.
func DomainParsingFailed(url string) *Error {
	return newError(CodeDomainParsingFailed, "DomainParsingFailed", "unable to parse a domain from URL: %s", url)
}

// NoIconsFound reports an empty manifest icon list.
func NoIconsFound() *Error {
	return newError(CodeNoIconsFound, "NoIconsFound", "manifest declares no icons")
}

// RelativePathReferencesParentDirectory reports an icon path containing a
// parent-directory segment.
func RelativePathReferencesParentDirectory(path string) *Error {
	return newError(CodeRelativePathReferencesParentDirectory, "RelativePathReferencesParentDirectory",
		"icon path references a parent directory: %s", path)
}

// RelativePathExpected reports an absolute icon path where a relative one
// is required.
func RelativePathExpected(path string) *Error {
	return newError(CodeRelativePathExpected, "RelativePathExpected", "icon path must be relative: %s", path)
}

// UnsupportedProtocolInAcur reports a URL scheme outside {http, https, *}
// in the access-rule set.
func UnsupportedProtocolInAcur(scheme string) *Error {
	return newError(CodeUnsupportedProtocolInAcur, "UnsupportedProtocolInAcur",
		"unsupported protocol in access rule: %s", scheme)
}

// IconNotFound reports a referenced icon file missing from the asset root.
func IconNotFound(path string) *Error {
	return newError(CodeIconNotFound, "IconNotFound", "icon file not found: %s", path)
}
