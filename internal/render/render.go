package render

import (
	"github.com/charmbracelet/log"

	"github.com/mernstack/mernctl/internal/chart"
	"github.com/mernstack/mernctl/internal/config"
)

// Renderer turns one resolved configuration tree into the stack's manifest
// documents. A render is a single pass with no side effects; rendering the
// same inputs twice yields byte-identical output.
type Renderer struct {
	ctx    chart.ReleaseContext
	values *config.Values
}

// New returns a Renderer for the given release context and resolved values.
// Name overrides set in the values take effect here, so callers do not have
// to copy them onto the context themselves.
func New(ctx chart.ReleaseContext, values *config.Values) *Renderer {
	if values.NameOverride != "" {
		ctx.NameOverride = values.NameOverride
	}
	if values.FullnameOverride != "" {
		ctx.FullnameOverride = values.FullnameOverride
	}
	return &Renderer{ctx: ctx, values: values}
}

// Render produces all documents in a fixed order: service account, secret,
// then each enabled service's Deployment and Service, then the ingress.
func (r *Renderer) Render() ([]Document, error) {
	var docs []Document

	if sa := ServiceAccount(r.ctx, r.values); sa != nil {
		docs = append(docs, Document{Kind: "ServiceAccount", Name: sa.Name, Object: sa})
	}

	if secret := Secret(r.ctx, r.values); secret != nil {
		docs = append(docs, Document{Kind: "Secret", Name: secret.Name, Object: secret})
	} else if r.values.Mongodb.ConnectionString != "" {
		log.Debug("mongodb secret not rendered, expected out-of-band",
			"existingSecret", r.values.Mongodb.ExistingSecret)
	}

	for _, ref := range r.values.Services() {
		if !ref.Service.IsEnabled() {
			log.Debug("service disabled, skipping", "component", ref.Component)
			continue
		}

		deploy, err := Deployment(r.ctx, r.values, ref)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Kind: "Deployment", Name: deploy.Name, Object: deploy})

		svc := Service(r.ctx, r.values, ref)
		docs = append(docs, Document{Kind: "Service", Name: svc.Name, Object: svc})
	}

	ingress, err := Ingress(r.ctx, r.values)
	if err != nil {
		return nil, err
	}
	if ingress != nil {
		docs = append(docs, *ingress)
	}

	return docs, nil
}

// Manifest renders and serializes the full multi-document manifest.
func (r *Renderer) Manifest() (string, error) {
	docs, err := r.Render()
	if err != nil {
		return "", err
	}
	return Manifest(docs)
}
