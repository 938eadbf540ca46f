package tools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fieldedge/internal/domain"
)

// Group is one domain's tool descriptors plus the handlers that serve them.
type Group struct {
	Name        string
	Definitions []domain.ToolDefinition
	Handlers    map[string]Handler
}

// Registry is the merged, immutable tool catalogue.
type Registry struct {
	definitions []domain.ToolDefinition
	handlers    map[string]Handler
	groupOf     map[string]string
	groups      []string
}

// DefaultGroups returns every FieldEdge tool group in catalogue order.
func DefaultGroups() []Group {
	return []Group{
		customerGroup(),
		jobGroup(),
		invoiceGroup(),
		estimateGroup(),
		equipmentGroup(),
		technicianGroup(),
		schedulingGroup(),
		inventoryGroup(),
		paymentGroup(),
		reportingGroup(),
		locationGroup(),
		serviceAgreementGroup(),
		taskGroup(),
	}
}

func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultGroups()...)
}

// NewRegistry merges groups and fails when a descriptor and a handler do not pair up one to one.
func NewRegistry(groups ...Group) (*Registry, error) {
	reg := &Registry{
		handlers: make(map[string]Handler),
		groupOf:  make(map[string]string),
	}
	var problems []string
	for _, group := range groups {
		if group.Name == "" {
			problems = append(problems, "group name is required")
			continue
		}
		reg.groups = append(reg.groups, group.Name)

		described := make(map[string]struct{}, len(group.Definitions))
		for _, def := range group.Definitions {
			if err := validateDefinition(def); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", group.Name, err))
				continue
			}
			if owner, dup := reg.groupOf[def.Name]; dup {
				problems = append(problems, fmt.Sprintf("%s: tool %q already registered by %s", group.Name, def.Name, owner))
				continue
			}
			handler := group.Handlers[def.Name]
			if handler == nil {
				problems = append(problems, fmt.Sprintf("%s: tool %q has no handler", group.Name, def.Name))
				continue
			}
			described[def.Name] = struct{}{}
			reg.definitions = append(reg.definitions, def)
			reg.handlers[def.Name] = handler
			reg.groupOf[def.Name] = group.Name
		}
		for name := range group.Handlers {
			if _, ok := described[name]; !ok && reg.groupOf[name] != group.Name {
				problems = append(problems, fmt.Sprintf("%s: handler %q has no descriptor", group.Name, name))
			}
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, errors.New("tool registry: " + strings.Join(problems, "; "))
	}
	return reg, nil
}

func validateDefinition(def domain.ToolDefinition) error {
	if def.Name == "" {
		return errors.New("tool name is required")
	}
	if !strings.HasPrefix(def.Name, domain.ToolPrefix) {
		return fmt.Errorf("tool %q must start with %q", def.Name, domain.ToolPrefix)
	}
	if def.InputSchema == nil || def.InputSchema.Type != "object" {
		return fmt.Errorf("tool %q input schema must be an object", def.Name)
	}
	for _, field := range def.InputSchema.Required {
		if _, ok := def.InputSchema.Properties[field]; !ok {
			return fmt.Errorf("tool %q requires undeclared property %q", def.Name, field)
		}
	}
	return nil
}

// Definitions returns the catalogue in registration order.
func (r *Registry) Definitions() []domain.ToolDefinition {
	return append([]domain.ToolDefinition(nil), r.definitions...)
}

// Definition looks up one descriptor by name.
func (r *Registry) Definition(name string) (domain.ToolDefinition, bool) {
	if _, ok := r.handlers[name]; !ok {
		return domain.ToolDefinition{}, false
	}
	for _, def := range r.definitions {
		if def.Name == name {
			return def, true
		}
	}
	return domain.ToolDefinition{}, false
}

func (r *Registry) Lookup(name string) (Handler, bool) {
	handler, ok := r.handlers[name]
	return handler, ok
}

// GroupOf names the domain group that owns a tool.
func (r *Registry) GroupOf(name string) (string, bool) {
	group, ok := r.groupOf[name]
	return group, ok
}

func (r *Registry) Groups() []string {
	return append([]string(nil), r.groups...)
}

// InGroup returns the descriptors owned by group.
func (r *Registry) InGroup(group string) []domain.ToolDefinition {
	var out []domain.ToolDefinition
	for _, def := range r.definitions {
		if r.groupOf[def.Name] == group {
			out = append(out, def)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.definitions)
}
