package gateway

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"fieldedge/internal/domain"
	"fieldedge/internal/infra/mcpcodec"
	"fieldedge/internal/infra/telemetry"
)

// App is one prebuilt dashboard served as an HTML resource.
type App struct {
	Slug        string
	Name        string
	Description string
}

var dashboardApps = []App{
	{"dashboard", "FieldEdge Dashboard", "Main dashboard with key metrics and recent activity"},
	{"customers", "Customer Management", "Browse and manage customers"},
	{"jobs", "Job Management", "View and manage jobs/work orders"},
	{"scheduling", "Scheduling & Dispatch", "Dispatch board and appointment scheduling"},
	{"invoices", "Invoice Management", "Create and manage invoices"},
	{"estimates", "Estimate/Quote Management", "Create and manage estimates"},
	{"technicians", "Technician Management", "Manage technicians and view schedules"},
	{"equipment", "Equipment Management", "Track customer equipment and service history"},
	{"inventory", "Inventory Management", "Manage parts and equipment inventory"},
	{"payments", "Payment Management", "Process payments and view payment history"},
	{"service-agreements", "Service Agreements", "Manage maintenance contracts and service plans"},
	{"reports", "Reports & Analytics", "View business reports and analytics"},
	{"tasks", "Task Management", "Manage follow-ups and to-do items"},
	{"calendar", "Calendar View", "Calendar view of appointments and jobs"},
	{"map-view", "Map View", "Map view of jobs and technician locations"},
	{"price-book", "Price Book Management", "Manage pricing for services and parts"},
}

// DashboardResources lists the dashboard apps as resource definitions.
func DashboardResources() []domain.ResourceDefinition {
	out := make([]domain.ResourceDefinition, 0, len(dashboardApps))
	for _, app := range dashboardApps {
		out = append(out, domain.ResourceDefinition{
			URI:         domain.ResourceURIPrefix + app.Slug,
			Name:        app.Name,
			Description: app.Description,
			MIMEType:    domain.ResourceMIMEType,
		})
	}
	return out
}

// appLoader reads <root>/<slug>/index.html for known dashboard slugs.
type appLoader struct {
	root  string
	known map[string]struct{}
}

func newAppLoader(root string) *appLoader {
	known := make(map[string]struct{}, len(dashboardApps))
	for _, app := range dashboardApps {
		known[app.Slug] = struct{}{}
	}
	return &appLoader{root: root, known: known}
}

func (l *appLoader) Load(uri string) (string, []byte, error) {
	slug := strings.TrimPrefix(uri, domain.ResourceURIPrefix)
	if _, ok := l.known[slug]; !ok || slug == uri {
		return slug, nil, fmt.Errorf("unknown app uri %q", uri)
	}
	data, err := os.ReadFile(filepath.Join(l.root, slug, "index.html"))
	if err != nil {
		return slug, nil, err
	}
	return slug, data, nil
}

type resourceRegistry struct {
	server     *mcp.Server
	loader     *appLoader
	logger     *zap.Logger
	registered map[string]struct{}
}

func newResourceRegistry(server *mcp.Server, loader *appLoader, logger *zap.Logger) *resourceRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resourceRegistry{
		server:     server,
		loader:     loader,
		logger:     logger.Named("resource_registry"),
		registered: make(map[string]struct{}),
	}
}

func (r *resourceRegistry) Register(defs []domain.ResourceDefinition) {
	for _, def := range defs {
		if !validResourceURI(def.URI) {
			r.logger.Warn("skip resource with invalid uri", zap.String("uri", def.URI))
			continue
		}
		r.server.AddResource(mcpcodec.ResourceToMCP(def), r.handler(def.URI))
		r.registered[def.URI] = struct{}{}
	}
}

func (r *resourceRegistry) handler(uri string) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		targetURI := uri
		if req != nil && req.Params != nil && req.Params.URI != "" {
			targetURI = req.Params.URI
		}
		slug, data, err := r.loader.Load(targetURI)
		if err != nil {
			r.logger.Warn("load dashboard app failed",
				telemetry.EventField(telemetry.EventResourceFailure),
				zap.String("uri", targetURI),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to load app: %s", slug)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      targetURI,
				MIMEType: domain.ResourceMIMEType,
				Text:     string(data),
			}},
		}, nil
	}
}

func validResourceURI(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != ""
}
