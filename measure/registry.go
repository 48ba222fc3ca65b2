package measure

import (
	"sort"
	"sync"

	"github.com/aptpod/viewmeasure-go/errors"
)

// ServiceNameは、計測サービスの標準の機能名称です。
const ServiceName = "ViewMeasurement"

var (
	// ErrCapabilityAlreadyRegisteredは、同じ名称の機能が既に登録されている場合のエラーです。
	ErrCapabilityAlreadyRegistered = errors.New("capability already registered")
)

// Registryは、機能名称とProviderの対応表です。
//
// 起動時に Register で登録し、以降は参照のみ行います。
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistryは、空のRegistryを生成します。
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Registerは、Providerを登録します。
func (r *Registry) Register(name string, p Provider) error {
	if p == nil {
		return errors.Errorf("nil provider for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	if _, ok := r.providers[name]; ok {
		return errors.Errorf("%q: %w", name, ErrCapabilityAlreadyRegistered)
	}
	r.providers[name] = p
	return nil
}

// Lookupは、登録されたProviderを返却します。
func (r *Registry) Lookup(name string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Namesは、登録された機能名称を昇順で返却します。
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.providers))
	for k := range r.providers {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Resolveは、名称に対応するProviderを使用するServiceを返却します。
//
// 登録されていない場合、またはrがnilの場合は nil, false を返却します。
func Resolve(r *Registry, name string, opts ...ServiceOption) (*Service, bool) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return NewService(p, opts...), true
}

// ResolveDefaultは、ServiceName で登録されたServiceを返却します。
func ResolveDefault(r *Registry, opts ...ServiceOption) (*Service, bool) {
	return Resolve(r, ServiceName, opts...)
}
