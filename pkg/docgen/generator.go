package docgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/spokedoc/pkg/config"
	"github.com/platinummonkey/spokedoc/pkg/markdown"
	"github.com/platinummonkey/spokedoc/pkg/schema"
)

// Request carries one generation pass worth of input: the full descriptor
// set and the names of the files to document.
type Request struct {
	Files    []*descriptorpb.FileDescriptorProto
	Generate []string
}

// OutputFile is one generated page.
type OutputFile struct {
	Name    string
	Content string
}

// Generator runs generation passes. One Generator may serve many requests;
// every pass builds its own index and closure memo and discards them after
// rendering.
type Generator struct {
	cfg      *config.Config
	renderer *markdown.Renderer
	log      *logrus.Logger
}

// New creates a Generator. A nil config falls back to defaults and a nil
// logger to a default logrus logger.
func New(cfg *config.Config, log *logrus.Logger) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logrus.New()
	}
	renderer, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, renderer: renderer, log: log}, nil
}

func newRenderer(cfg *config.Config) (*markdown.Renderer, error) {
	if cfg.TemplatePath != "" {
		return markdown.NewRendererFromFile(cfg.TemplatePath)
	}
	return markdown.NewRenderer()
}

// Run executes one generation pass: index every input file, resolve the
// requested files' services, and render pages.
func (g *Generator) Run(req Request) ([]OutputFile, error) {
	log := g.log.WithFields(logrus.Fields{
		"request_id": uuid.New().String(),
		"files":      len(req.Files),
		"generate":   len(req.Generate),
	})
	log.Debug("starting generation pass")

	index, err := schema.BuildTypeIndex(req.Files)
	if err != nil {
		return nil, err
	}
	collector := schema.NewClosureCollector(index)

	if g.cfg.SinglePage != "" {
		return g.singlePage(log, req, index, collector)
	}
	return g.pagePerFile(log, req, index, collector)
}

// pagePerFile renders one page for each requested file, named after the
// proto path.
func (g *Generator) pagePerFile(log *logrus.Entry, req Request, index schema.TypeIndex, collector *schema.ClosureCollector) ([]OutputFile, error) {
	out := make([]OutputFile, 0, len(req.Generate))
	for _, name := range req.Generate {
		views, err := serviceViews(name, req.Files, index, collector)
		if err != nil {
			return nil, err
		}
		content, err := g.renderer.RenderPage(&markdown.Page{Source: name, Services: views})
		if err != nil {
			return nil, err
		}
		page := PageName(name)
		out = append(out, OutputFile{Name: page, Content: content})
		log.WithField("page", page).Debug("rendered page")
	}
	return out, nil
}

// singlePage collects every requested file's services into one combined
// page.
func (g *Generator) singlePage(log *logrus.Entry, req Request, index schema.TypeIndex, collector *schema.ClosureCollector) ([]OutputFile, error) {
	var views []*markdown.ServiceView
	for _, name := range req.Generate {
		fileViews, err := serviceViews(name, req.Files, index, collector)
		if err != nil {
			return nil, err
		}
		views = append(views, fileViews...)
	}
	page := &markdown.Page{Source: strings.Join(req.Generate, ", "), Services: views}
	content, err := g.renderer.RenderPage(page)
	if err != nil {
		return nil, err
	}
	log.WithField("page", g.cfg.SinglePage).Debug("rendered combined page")
	return []OutputFile{{Name: g.cfg.SinglePage, Content: content}}, nil
}

func serviceViews(name string, files []*descriptorpb.FileDescriptorProto, index schema.TypeIndex, collector *schema.ClosureCollector) ([]*markdown.ServiceView, error) {
	file, err := schema.FileByName(files, name)
	if err != nil {
		return nil, err
	}
	services, err := schema.BuildServices(file, index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	views := make([]*markdown.ServiceView, 0, len(services))
	for _, svc := range services {
		views = append(views, serviceView(svc, collector))
	}
	return views, nil
}

func serviceView(svc *schema.Service, collector *schema.ClosureCollector) *markdown.ServiceView {
	view := &markdown.ServiceView{Service: svc}
	for _, m := range svc.Methods {
		view.Methods = append(view.Methods, methodView(m, collector))
	}
	for _, m := range svc.DeprecatedMethods {
		view.Deprecated = append(view.Deprecated, methodView(m, collector))
	}
	return view
}

// methodView pairs a method with self-contained type listings: each side
// lists the type itself followed by its transitive closure.
func methodView(m *schema.Method, collector *schema.ClosureCollector) *markdown.MethodView {
	return &markdown.MethodView{
		Method:      m,
		InputTypes:  append([]schema.Type{m.Input}, collector.Collect(m.Input)...),
		OutputTypes: append([]schema.Type{m.Output}, collector.Collect(m.Output)...),
	}
}

// PageName maps a proto file path to its page name, flattening directories
// into dots: example/v1/svc.proto becomes example.v1.svc.proto.md.
func PageName(protoPath string) string {
	return strings.ReplaceAll(protoPath, "/", ".") + ".md"
}
