// Package assets selects or synthesizes the four canonical icon assets a
// package descriptor requires from a manifest's declared icon list.
//
// An icon matching a canonical size exactly is referenced in place. For the
// remaining slots the nearest declared icon is resized: stretched down to
// the exact target when it overflows either dimension, otherwise centered
// unscaled on a transparent canvas. Synthesized files are written beside
// their source with a _scaled_<w>x<h> suffix.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofrs/flock"

	"appxify/internal/converr"
	"appxify/internal/manifest"
)

// Slot identifies one canonical icon slot and its required dimensions.
type Slot struct {
	Name   string
	Width  int
	Height int
}

// Canonical slots in resolution order.
var (
	StoreLogo    = Slot{Name: "StoreLogo", Width: 50, Height: 50}
	SmallLogo    = Slot{Name: "SmallLogo", Width: 44, Height: 44}
	LargeLogo    = Slot{Name: "LargeLogo", Width: 150, Height: 150}
	SplashScreen = Slot{Name: "SplashScreen", Width: 620, Height: 300}
)

// Slots returns the canonical slots in the order they are filled.
func Slots() []Slot {
	return []Slot{StoreLogo, SmallLogo, LargeLogo, SplashScreen}
}

// Resolved is the outcome for one slot: the descriptor-relative path to use
// and whether a new file was synthesized for it.
type Resolved struct {
	Slot        Slot
	Path        string
	Source      string
	Synthesized bool
}

// Set holds the resolved asset for every canonical slot.
type Set struct {
	StoreLogo    Resolved
	SmallLogo    Resolved
	LargeLogo    Resolved
	SplashScreen Resolved
}

// All returns the resolved assets in slot order.
func (s *Set) All() []Resolved {
	return []Resolved{s.StoreLogo, s.SmallLogo, s.LargeLogo, s.SplashScreen}
}

// lockFileName guards concurrent invocations writing into one asset root.
const lockFileName = ".appxify.lock"

// Resolver fills icon slots from an asset root directory.
type Resolver struct {
	root   string
	dryRun bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDryRun disables image synthesis: nearest-fit selection still runs and
// is reported, but no file is decoded or written.
func WithDryRun() Option {
	return func(r *Resolver) {
		r.dryRun = true
	}
}

// NewResolver creates a Resolver rooted at the manifest's asset directory.
func NewResolver(root string, opts ...Option) *Resolver {
	r := &Resolver{root: root}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates every declared icon and fills all four canonical slots.
// Synthesis writes at most four PNG files beside their sources, serialized
// across processes by a file lock in the asset root.
func (r *Resolver) Resolve(icons []manifest.Icon) (*Set, error) {
	if len(icons) == 0 {
		return nil, converr.NoIconsFound()
	}
	for _, icon := range icons {
		if err := validatePath(r.root, icon.Src); err != nil {
			return nil, err
		}
	}

	if !r.dryRun {
		lock := flock.New(filepath.Join(r.root, lockFileName))
		if err := lock.Lock(); err != nil {
			return nil, fmt.Errorf("lock asset root: %w", err)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	set := &Set{}
	targets := []*Resolved{&set.StoreLogo, &set.SmallLogo, &set.LargeLogo, &set.SplashScreen}
	for i, slot := range Slots() {
		resolved, err := r.resolveSlot(slot, icons)
		if err != nil {
			return nil, err
		}
		*targets[i] = resolved
	}
	return set, nil
}

func (r *Resolver) resolveSlot(slot Slot, icons []manifest.Icon) (Resolved, error) {
	for _, icon := range icons {
		w, h, ok := parseSizes(icon.Sizes)
		if ok && w == slot.Width && h == slot.Height {
			return Resolved{Slot: slot, Path: sanitizePath(icon.Src), Source: icon.Src}, nil
		}
	}

	best := nearest(slot, icons)
	outName := fmt.Sprintf("%s_scaled_%dx%d.png", stem(best.Src), slot.Width, slot.Height)
	outRel := path.Join(path.Dir(sanitizePath(best.Src)), outName)
	if r.dryRun {
		return Resolved{Slot: slot, Path: outRel, Source: best.Src, Synthesized: true}, nil
	}
	if err := r.synthesize(slot, best, outRel); err != nil {
		return Resolved{}, err
	}
	return Resolved{Slot: slot, Path: outRel, Source: best.Src, Synthesized: true}, nil
}

func (r *Resolver) synthesize(slot Slot, icon manifest.Icon, outRel string) error {
	src, err := imaging.Open(filepath.Join(r.root, filepath.FromSlash(sanitizePath(icon.Src))))
	if err != nil {
		return fmt.Errorf("decode icon %s: %w", icon.Src, err)
	}

	bounds := src.Bounds()
	var out *image.NRGBA
	if bounds.Dx() > slot.Width || bounds.Dy() > slot.Height {
		// Oversized sources are stretched to the exact slot dimensions.
		out = imaging.Resize(src, slot.Width, slot.Height, imaging.Lanczos)
	} else {
		canvas := imaging.New(slot.Width, slot.Height, color.NRGBA{})
		out = imaging.PasteCenter(canvas, src)
	}

	dst := filepath.Join(r.root, filepath.FromSlash(outRel))
	if err := imaging.Save(out, dst); err != nil {
		return fmt.Errorf("write icon %s: %w", outRel, err)
	}
	return nil
}

// nearest picks the icon minimizing the Chebyshev distance to the slot
// dimensions. Earlier declarations win ties. Icons with unparseable sizes
// are measured as 0x0 so they stay eligible but rank last.
func nearest(slot Slot, icons []manifest.Icon) manifest.Icon {
	best := icons[0]
	bestDist := -1
	for _, icon := range icons {
		w, h, _ := parseSizes(icon.Sizes)
		dw := abs(w - slot.Width)
		dh := abs(h - slot.Height)
		dist := max(dw, dh)
		if bestDist < 0 || dist < bestDist {
			best = icon
			bestDist = dist
		}
	}
	return best
}

// validatePath accepts the relative form a sanitized src resolves to. One
// leading separator is tolerated; anything still rooted after that strip is
// rejected as absolute.
func validatePath(root, src string) error {
	for _, segment := range strings.FieldsFunc(src, func(r rune) bool { return r == '/' || r == '\\' }) {
		if segment == ".." {
			return converr.RelativePathReferencesParentDirectory(src)
		}
	}
	rel := sanitizePath(src)
	if strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, "\\") || filepath.IsAbs(rel) {
		return converr.RelativePathExpected(src)
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	if !fileExists(full) {
		return converr.IconNotFound(src)
	}
	return nil
}

// sanitizePath strips at most one leading path separator so manifest paths
// written as "/images/x.png" resolve inside the asset root.
func sanitizePath(src string) string {
	if strings.HasPrefix(src, "/") || strings.HasPrefix(src, "\\") {
		return src[1:]
	}
	return src
}

func parseSizes(sizes string) (int, int, bool) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(sizes)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func stem(src string) string {
	base := path.Base(sanitizePath(src))
	return strings.TrimSuffix(base, path.Ext(base))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
