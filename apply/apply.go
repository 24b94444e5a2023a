// Package apply implements the localization batch orchestrator: for each
// target locale it clones the selected subtree, applies translated text
// with dominant-style preservation, fuzzy-matches and swaps locale image
// assets, and aggregates counts and per-node issues.
//
// Failure scope is a first-class concept with exactly three tiers:
//
//   - validation errors abort the run before any work happens;
//   - a per-locale error abandons only that locale's clone;
//   - a per-node soft failure (font load, style read, byte retrieval,
//     image swap) skips only that node.
//
// Match-quality outcomes (no-candidate, low-confidence, ambiguous) are not
// failures; they are conservative refusals to guess, recorded as issues
// for human review.
package apply

import (
	"context"
	"errors"
	"fmt"

	"github.com/framelate/framelate/catalog"
	"github.com/framelate/framelate/design"
	"github.com/framelate/framelate/extract"
	"github.com/framelate/framelate/fetch"
	"github.com/framelate/framelate/match"
	"github.com/framelate/framelate/style"
	"github.com/framelate/framelate/transmap"
)

// CloneSpacing is the fixed vertical gap between a frame and the clone
// stacked below it.
const CloneSpacing = 100.0

// MaxIssues caps the structured issue list carried by a Result.
const MaxIssues = 30

// Validation errors.
var (
	ErrNoSelection   = errors.New("no valid root frame selected")
	ErrNoLocales     = errors.New("no target locales resolvable")
	ErrNoCatalog     = errors.New("image replacement requested but asset catalog is empty")
	ErrNothingToDo   = errors.New("neither text translations nor image replacement requested")
	ErrFrameNotFound = errors.New("selected frame not found in document")
)

// FontLoader ensures font resources are available before text mutation.
// A load failure is a per-node soft failure, never fatal.
type FontLoader interface {
	EnsureLoaded(ctx context.Context, font design.FontRef) error
}

// permissiveFonts treats every font as loadable. Used when no loader is
// configured (the document model carries no real font resources).
type permissiveFonts struct{}

func (permissiveFonts) EnsureLoaded(context.Context, design.FontRef) error { return nil }

// Options configures a batch run.
type Options struct {
	// Document is the live document the run mutates.
	Document *design.Document
	// RootID selects the frame to localize. Empty selects the document's
	// only frame; with several frames an explicit id is required.
	RootID string
	// Translations maps locale → node id → translated text.
	Translations transmap.Map
	// Locales is the ordered target list. Empty derives it from the
	// translation map's keys.
	Locales []string
	// ReplaceImages enables the image replacement pass.
	ReplaceImages bool
	// Catalog is the locale asset catalog; required when ReplaceImages.
	Catalog *catalog.Catalog
	// Fetcher retrieves asset bytes; required when ReplaceImages.
	Fetcher *fetch.Orchestrator
	// Fonts pre-loads fonts before text replacement. Nil allows all.
	Fonts FontLoader
	// OnLog and OnError receive progress and non-fatal failure messages.
	OnLog   func(format string, args ...any)
	OnError func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

// Issue is one structured per-node record of a skipped replacement.
type Issue struct {
	Locale          string   `json:"locale"`
	NodeID          string   `json:"nodeId"`
	NodeName        string   `json:"nodeName"`
	Reason          string   `json:"reason"`
	BestScore       *float64 `json:"bestScore,omitempty"`
	SecondBestScore *float64 `json:"secondBestScore,omitempty"`
	Candidates      []string `json:"candidates,omitempty"`
}

// Issue reasons beyond the match statuses.
const ReasonReadFailed = "read-failed"

// Result aggregates a batch run.
type Result struct {
	FrameCount          int     `json:"frameCount"`
	ImageReplacedCount  int     `json:"imageReplacedCount"`
	ImageSkippedCount   int     `json:"imageSkippedCount"`
	ImageAmbiguousCount int     `json:"imageAmbiguousCount"`
	ImageFailedCount    int     `json:"imageFailedCount"`
	Issues              []Issue `json:"imageIssues"`
}

func (r *Result) addIssue(is Issue) {
	if len(r.Issues) < MaxIssues {
		r.Issues = append(r.Issues, is)
	}
}

// Run executes a batch localization run. Locales are processed strictly
// sequentially; each clone is a disjoint mutable subtree touched by
// exactly one control-flow path, so no locking is needed anywhere in the
// engine.
func Run(ctx context.Context, opts Options) (*Result, error) {
	root, locales, index, err := validate(opts)
	if err != nil {
		return nil, err
	}

	fonts := opts.Fonts
	if fonts == nil {
		fonts = permissiveFonts{}
	}

	// Immutable snapshot of the original, taken before any mutation.
	images := extract.Images(root)

	res := &Result{}
	nextY := root.Y + root.H + CloneSpacing

	for _, locale := range locales {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		texts := opts.Translations[locale]
		opts.log("Locale %s: %d translations, %d image paints", locale, len(texts), len(images))

		clone, err := localizeOne(ctx, localeTask{
			root:   root,
			locale: locale,
			texts:  texts,
			images: images,
			index:  index,
			y:      nextY,
		}, opts, fonts, res)
		if err != nil {
			// Per-locale failure tier: drop this locale's clone, keep going.
			opts.logError("Locale %s failed: %v", locale, err)
			continue
		}

		opts.Document.Frames = append(opts.Document.Frames, clone)
		res.FrameCount++
		nextY = clone.Y + clone.H + CloneSpacing
	}

	return res, nil
}

// validate applies the fail-fast checks; no partial work happens past here.
func validate(opts Options) (*design.Node, []string, *catalog.Index, error) {
	if opts.Document == nil {
		return nil, nil, nil, ErrNoSelection
	}

	var root *design.Node
	switch {
	case opts.RootID != "":
		root = opts.Document.FindFrame(opts.RootID)
		if root == nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrFrameNotFound, opts.RootID)
		}
	case len(opts.Document.Frames) == 1:
		root = opts.Document.Frames[0]
	default:
		return nil, nil, nil, ErrNoSelection
	}

	locales := opts.Locales
	if len(locales) == 0 {
		locales = opts.Translations.Locales()
	}
	if len(locales) == 0 {
		return nil, nil, nil, ErrNoLocales
	}

	hasTexts := false
	for _, byNode := range opts.Translations {
		if len(byNode) > 0 {
			hasTexts = true
			break
		}
	}
	if !hasTexts && !opts.ReplaceImages {
		return nil, nil, nil, ErrNothingToDo
	}

	var index *catalog.Index
	if opts.ReplaceImages {
		if opts.Catalog == nil || len(opts.Catalog.Entries) == 0 {
			return nil, nil, nil, ErrNoCatalog
		}
		if opts.Fetcher == nil {
			return nil, nil, nil, errors.New("image replacement requested but no byte fetcher configured")
		}
		index = catalog.BuildIndex(opts.Catalog)
	}

	return root, locales, index, nil
}

// localeTask carries everything one locale's pass needs.
type localeTask struct {
	root   *design.Node
	locale string
	texts  map[string]string
	images []extract.ImageInfo
	index  *catalog.Index
	y      float64
}

// localizeOne clones the root for one locale and runs the text and image
// passes against it. An error — or a panic from tree mutation — abandons
// the clone entirely; the caller moves on to the next locale.
func localizeOne(ctx context.Context, task localeTask, opts Options, fonts FontLoader, res *Result) (clone *design.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			clone = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	clone = task.root.Clone()
	clone.Name = task.root.Name + "_" + task.locale
	clone.Y = task.y

	corr := design.BuildCorrespondence(task.root, clone)

	if len(task.texts) > 0 {
		applyTexts(ctx, task, corr, opts, fonts)
	}
	if opts.ReplaceImages {
		applyImages(ctx, task, corr, opts, res)
	}
	return clone, nil
}

// applyTexts replaces text content on the clone's text nodes. Fonts are
// loaded in a pre-pass so a mid-replacement font failure cannot leave the
// locale half-translated by async ordering; a node whose font fails to
// load is skipped as a soft failure.
func applyTexts(ctx context.Context, task localeTask, corr *design.Correspondence, opts Options, fonts FontLoader) {
	type job struct {
		node *design.Node
		text string
		dom  style.Dominant
		ok   bool
	}

	var jobs []job
	for nodeID, text := range task.texts {
		node, found := corr.Texts[nodeID]
		if !found {
			continue
		}
		dom, ok := style.Resolve(node)
		if ok {
			if font, uniform := dom.Font.Get(); uniform {
				if err := fonts.EnsureLoaded(ctx, font); err != nil {
					opts.logError("Locale %s: node %s font %s %s: %v",
						task.locale, nodeID, font.Family, font.Style, err)
					continue
				}
			}
		}
		jobs = append(jobs, job{node: node, text: text, dom: dom, ok: ok})
	}

	for _, j := range jobs {
		j.node.SetText(j.text)
		if j.ok {
			style.Apply(j.node, j.dom)
		}
	}
}

// applyImages runs the matcher over every image paint of the original and
// swaps matched paints on the clone in place, leaving all other paint
// layers and attributes untouched.
func applyImages(ctx context.Context, task localeTask, corr *design.Correspondence, opts Options, res *Result) {
	candidates := task.index.Candidates(task.locale)

	for _, info := range task.images {
		decision := match.Rank(info.Name, candidates)

		switch decision.Status {
		case match.StatusMatched:
			// fall through to replacement below
		case match.StatusAmbiguous:
			res.ImageAmbiguousCount++
			res.addIssue(issueFromDecision(task.locale, info, decision))
			continue
		default: // no-candidate, low-confidence
			res.ImageSkippedCount++
			res.addIssue(issueFromDecision(task.locale, info, decision))
			continue
		}

		handle, ok := opts.Fetcher.Fetch(ctx, decision.Best.Entry.Key)
		if !ok {
			res.ImageFailedCount++
			res.addIssue(Issue{
				Locale:   task.locale,
				NodeID:   info.NodeID,
				NodeName: info.Name,
				Reason:   ReasonReadFailed,
			})
			continue
		}

		node, found := corr.All[info.NodeID]
		if !found || info.PaintIndex >= len(node.Fills) {
			res.ImageFailedCount++
			res.addIssue(Issue{
				Locale:   task.locale,
				NodeID:   info.NodeID,
				NodeName: info.Name,
				Reason:   ReasonReadFailed,
			})
			continue
		}
		node.Fills[info.PaintIndex].ImageHandle = handle
		res.ImageReplacedCount++
	}
}

// issueFromDecision builds a match-quality issue with score diagnostics.
func issueFromDecision(locale string, info extract.ImageInfo, d match.Decision) Issue {
	is := Issue{
		Locale:   locale,
		NodeID:   info.NodeID,
		NodeName: info.Name,
		Reason:   string(d.Status),
	}
	if d.Best != nil {
		score := d.Best.Score
		is.BestScore = &score
	}
	if d.Second != nil {
		score := d.Second.Score
		is.SecondBestScore = &score
	}
	for _, r := range d.Top {
		is.Candidates = append(is.Candidates, r.Entry.Key)
	}
	return is
}
