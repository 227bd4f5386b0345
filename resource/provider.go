package resource

import "github.com/cyp0633/libccm/observable"

// Provider is a source of collections, e.g. a local or remote account.
type Provider struct {
	id   ID
	name string

	collections *observable.List[*Collection]
}

// NewProvider creates an unattached provider.
func NewProvider(id ID, name string) *Provider {
	return &Provider{
		id:          id,
		name:        name,
		collections: observable.New[*Collection](),
	}
}

func (p *Provider) ID() ID     { return p.id }
func (p *Provider) Kind() Kind { return KindProvider }
func (p *Provider) resource()  {}

func (p *Provider) Name() string { return p.name }

// Collections returns the provider's owned collections.
func (p *Provider) Collections() *observable.List[*Collection] {
	return p.collections
}

// AddCollection appends c to the provider's collections.
func (p *Provider) AddCollection(c *Collection) {
	p.collections.Append(c)
}
