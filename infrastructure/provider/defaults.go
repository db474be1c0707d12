package provider

import (
	adoProv "github.com/rios0rios0/gitfleet/infrastructure/provider/azuredevops"
	ghProv "github.com/rios0rios0/gitfleet/infrastructure/provider/github"
	glProv "github.com/rios0rios0/gitfleet/infrastructure/provider/gitlab"
)

// NewDefaultRegistry returns a registry holding every built-in provider.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("gitlab", glProv.New)
	reg.Register("github", ghProv.New)
	reg.Register("azuredevops", adoProv.New)
	return reg
}
