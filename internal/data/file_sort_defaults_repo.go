package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/target/sortparam/internal/core"
	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
)

var _ core.SortDefaultsRepository = (*FileSortDefaultsRepo)(nil)

// sortDefaultsFile is the on-disk YAML layout:
//
//	sites:
//	  users:
//	    single: {properties: [lastname, firstname], direction: asc}
//	  orders:
//	    multiple:
//	      - {properties: [created_at], direction: desc}
//	      - {properties: [id], direction: asc}
//	  unordered:
//	    multiple: []
type sortDefaultsFile struct {
	Sites map[string]*sortDefaultsRecord `yaml:"sites"`
}

// sortDefaultsRecord is one site in the file. Multiple is a pointer so that an empty
// collection is written as `multiple: []` and stays distinct from no collection at all.
type sortDefaultsRecord struct {
	Single    *model.SortDefault   `yaml:"single,omitempty"`
	Multiple  *[]model.SortDefault `yaml:"multiple,omitempty"`
	UpdatedAt time.Time            `yaml:"updated_at,omitempty"`
}

func newSortDefaultsRecord(d *model.SortDefaults) *sortDefaultsRecord {
	rec := &sortDefaultsRecord{Single: d.Single, UpdatedAt: d.UpdatedAt}
	if d.Multiple != nil {
		multiple := d.Multiple
		rec.Multiple = &multiple
	}
	return rec
}

func (rec *sortDefaultsRecord) multiple() []model.SortDefault {
	if rec == nil || rec.Multiple == nil {
		return nil
	}
	if *rec.Multiple == nil {
		return []model.SortDefault{}
	}
	return *rec.Multiple
}

// FileSortDefaultsRepo keeps per-site defaults in a YAML file.
// The file is read once on construction; writes rewrite it atomically.
type FileSortDefaultsRepo struct {
	path         string
	timeProvider TimeProvider

	mu    sync.RWMutex
	sites map[string]*model.SortDefaults
}

// NewFileSortDefaultsRepo loads path. A missing file starts out empty.
func NewFileSortDefaultsRepo(path string) (*FileSortDefaultsRepo, error) {
	return NewFileSortDefaultsRepoWithTimeProvider(path, &RealTimeProvider{})
}

// NewFileSortDefaultsRepoWithTimeProvider is like NewFileSortDefaultsRepo with a custom clock.
func NewFileSortDefaultsRepoWithTimeProvider(path string, tp TimeProvider) (*FileSortDefaultsRepo, error) {
	sites, err := loadSortDefaultsFile(path)
	if err != nil {
		return nil, err
	}
	return &FileSortDefaultsRepo{path: path, timeProvider: tp, sites: sites}, nil
}

func loadSortDefaultsFile(path string) (map[string]*model.SortDefaults, error) {
	// #nosec G304 -- path comes from trusted config.
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]*model.SortDefaults{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sort defaults file: %w", err)
	}

	var doc sortDefaultsFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse sort defaults file %s: %w", path, err)
	}

	sites := make(map[string]*model.SortDefaults, len(doc.Sites))
	for site, rec := range doc.Sites {
		if rec == nil {
			rec = &sortDefaultsRecord{}
		}
		req := model.PutSortDefaultsRequest{Site: site, Single: rec.Single, Multiple: rec.multiple()}
		req.Normalize()
		if err := req.Validate(); err != nil {
			return nil, apperrors.Configuration("SORT_DEFAULTS_FILE", fmt.Sprintf("site %q: %v", site, err))
		}
		normalized := req.ToSortDefaults()
		normalized.UpdatedAt = rec.UpdatedAt
		sites[normalized.Site] = &normalized
	}
	return sites, nil
}

// Get returns the defaults of site.
func (r *FileSortDefaultsRepo) Get(_ context.Context, site string) (*model.SortDefaults, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.sites[site]
	if !ok {
		return nil, apperrors.NotFoundf("no sort defaults for site %q", site)
	}
	out := *d
	return &out, nil
}

// List returns one page of stored defaults and the number of matching sites.
func (r *FileSortDefaultsRepo) List(_ context.Context, opts model.SortDefaultsListOptions) (*model.SortDefaultsPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(opts.Query())
	matches := lo.Filter(lo.MapToSlice(r.sites, func(_ string, d *model.SortDefaults) *model.SortDefaults {
		cp := *d
		return &cp
	}), func(d *model.SortDefaults, _ int) bool {
		return q == "" || strings.Contains(strings.ToLower(d.Site), q)
	})

	orders := opts.ListSort().Orders()
	sort.SliceStable(matches, func(i, j int) bool {
		return compareSortDefaults(matches[i], matches[j], orders) < 0
	})

	total := len(matches)
	start := min(max(opts.Offset, 0), total)
	end := total
	if opts.Limit > 0 {
		end = min(start+opts.Limit, total)
	}
	return &model.SortDefaultsPage{Items: matches[start:end], Total: total}, nil
}

func compareSortDefaults(a, b *model.SortDefaults, orders []model.Order) int {
	for _, o := range orders {
		var c int
		switch o.Property {
		case model.SortDefaultsBySite:
			c = strings.Compare(a.Site, b.Site)
		case model.SortDefaultsByUpdated:
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		if o.Direction.IsDescending() {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Put stores defaults and rewrites the file.
func (r *FileSortDefaultsRepo) Put(_ context.Context, defaults *model.SortDefaults) (*model.SortDefaults, error) {
	if defaults == nil || defaults.Site == "" {
		return nil, apperrors.ValidationField("site", "site is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *defaults
	stored.UpdatedAt = r.timeProvider.Now().UTC()

	prev, existed := r.sites[stored.Site]
	r.sites[stored.Site] = &stored
	if err := r.flush(); err != nil {
		if existed {
			r.sites[stored.Site] = prev
		} else {
			delete(r.sites, stored.Site)
		}
		return nil, err
	}
	out := stored
	return &out, nil
}

// Delete removes the defaults of site and rewrites the file.
func (r *FileSortDefaultsRepo) Delete(_ context.Context, site string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.sites[site]
	if !ok {
		return false, nil
	}
	delete(r.sites, site)
	if err := r.flush(); err != nil {
		r.sites[site] = prev
		return false, err
	}
	return true, nil
}

// flush writes the current state to a temp file and renames it over the target.
// Caller must hold r.mu.
func (r *FileSortDefaultsRepo) flush() error {
	doc := sortDefaultsFile{Sites: make(map[string]*sortDefaultsRecord, len(r.sites))}
	for site, d := range r.sites {
		doc.Sites[site] = newSortDefaultsRecord(d)
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode sort defaults: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create sort defaults dir: %w", err)
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write sort defaults: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace sort defaults file: %w", err)
	}
	return nil
}
