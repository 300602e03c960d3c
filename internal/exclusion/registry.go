// Package exclusion keeps the lists of coins a bot must not trade: stable
// coins and coins that misbehaved on the exchange.
package exclusion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
)

const quoteAsset = "USDT"

type document struct {
	StableCoins      []string `json:"stable_coins"`
	ProblematicCoins []string `json:"problematic_coins"`
}

// Registry is a JSON file backed exclusion list. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	path        string
	stable      []string
	problematic []string
}

// Open loads the registry at path. A missing file gives an empty registry
// that is created on the first change.
func Open(path string) (*Registry, error) {
	r := &Registry{
		path:        path,
		stable:      []string{},
		problematic: []string{},
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}

	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to read exclusion file %s", path)
	}

	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to parse exclusion file %s", path)
	}

	if doc.StableCoins != nil {
		r.stable = doc.StableCoins
	}

	if doc.ProblematicCoins != nil {
		r.problematic = doc.ProblematicCoins
	}

	return r, nil
}

// Path returns the backing file.
func (r *Registry) Path() string {
	return r.path
}

// AddStable records symbol as a stable coin. A USDT quoted pair such as
// USDCUSDT is stored as its base asset. It reports whether the list changed.
func (r *Registry) AddStable(symbol string) (bool, error) {
	return r.add(&r.stable, symbol)
}

// AddProblematic records symbol as a problematic coin, like AddStable.
func (r *Registry) AddProblematic(symbol string) (bool, error) {
	return r.add(&r.problematic, symbol)
}

func (r *Registry) add(list *[]string, symbol string) (bool, error) {
	coin := baseAsset(symbol)
	if coin == "" {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(*list, coin) {
		return false, nil
	}

	*list = append(*list, coin)

	if err := r.save(); err != nil {
		*list = (*list)[:len(*list)-1]

		return false, err
	}

	return true, nil
}

// Filter returns coins that are in neither list, keeping their order.
func (r *Registry) Filter(coins []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kept := make([]string, 0, len(coins))

	for _, coin := range coins {
		if slices.Contains(r.stable, coin) || slices.Contains(r.problematic, coin) {
			continue
		}

		kept = append(kept, coin)
	}

	return kept
}

// Stable returns a copy of the stable coin list.
func (r *Registry) Stable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.stable)
}

// Problematic returns a copy of the problematic coin list.
func (r *Registry) Problematic() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.problematic)
}

// save writes the registry through a temp file in the same directory so that
// readers never see a partial file. Caller holds mu.
func (r *Registry) save() error {
	content, err := json.MarshalIndent(document{
		StableCoins:      r.stable,
		ProblematicCoins: r.problematic,
	}, "", "    ")
	if err != nil {
		return errors.Wrap(errors.ErrCodePersistenceFailed, "failed to encode exclusion list", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to create temp file in %s", dir)
	}

	tmpPath := tmp.Name()

	if _, err := tmp.Write(append(content, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)

		return errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to write %s", tmpPath)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)

		return errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to close %s", tmpPath)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)

		return errors.Wrapf(errors.ErrCodePersistenceFailed, err, "failed to replace %s", r.path)
	}

	return nil
}

// baseAsset strips a trailing USDT quote. USDT itself is kept.
func baseAsset(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol != quoteAsset && strings.HasSuffix(symbol, quoteAsset) {
		return strings.TrimSuffix(symbol, quoteAsset)
	}

	return symbol
}
