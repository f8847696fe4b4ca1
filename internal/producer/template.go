package producer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
)

// payload is the file-oriented shape a descriptor payload decodes into.
// Paths and contents are Go templates evaluated against the component and
// the resolution context.
type payload struct {
	Files        []payloadFile `yaml:"files"`
	Dependencies []string      `yaml:"dependencies"`
}

type payloadFile struct {
	Path       string `yaml:"path"`
	Content    string `yaml:"content"`
	Executable bool   `yaml:"executable"`
}

// templateData is the dot value available inside payload templates.
type templateData struct {
	Key         string
	Kind        string
	Type        string
	Provider    string
	Version     string
	Framework   string
	Platform    string
	Context     string
	Environment string
	Region      string
	Overrides   map[string]string
}

// TemplateProducer renders a component's payload files into TargetDir.
type TemplateProducer struct {
	TargetDir string
	funcs     template.FuncMap
}

// NewTemplateProducer creates a producer writing into targetDir.
func NewTemplateProducer(targetDir string) *TemplateProducer {
	return &TemplateProducer{
		TargetDir: targetDir,
		funcs: template.FuncMap{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": func(s string) string {
				words := strings.Fields(s)
				for i, word := range words {
					if len(word) > 0 {
						words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
					}
				}
				return strings.Join(words, " ")
			},
		},
	}
}

// Produce implements Producer.
func (p *TemplateProducer) Produce(ctx context.Context, d component.Descriptor, rctx component.ResolutionContext, dryRun bool) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	pl, err := decodePayload(d.Payload)
	if err != nil {
		return Output{}, fmt.Errorf("component %s: %w", d.Key, err)
	}

	data := templateData{
		Key:         d.Key.String(),
		Kind:        string(d.Key.Kind),
		Type:        d.Key.Type,
		Provider:    d.Key.Provider,
		Version:     d.Version,
		Framework:   rctx.Framework,
		Platform:    rctx.Platform,
		Context:     rctx.Context,
		Environment: rctx.Environment,
		Region:      rctx.Region,
		Overrides:   rctx.Overrides,
	}

	out := Output{Success: true, DependenciesAdded: pl.Dependencies}
	for _, f := range pl.Files {
		rel, err := p.renderString(f.Path, data)
		if err != nil {
			return Output{}, fmt.Errorf("component %s: render path %q: %w", d.Key, f.Path, err)
		}
		target, err := p.resolveTarget(rel)
		if err != nil {
			return Output{}, fmt.Errorf("component %s: %w", d.Key, err)
		}

		content, err := p.renderString(f.Content, data)
		if err != nil {
			return Output{}, fmt.Errorf("component %s: render %q: %w", d.Key, rel, err)
		}

		out.FilesAffected = append(out.FilesAffected, rel)
		if dryRun {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return Output{}, fmt.Errorf("component %s: create %s: %w", d.Key, filepath.Dir(target), err)
		}
		mode := os.FileMode(0o644)
		if f.Executable {
			mode = 0o755
		}
		if err := os.WriteFile(target, []byte(content), mode); err != nil {
			return Output{}, fmt.Errorf("component %s: write %s: %w", d.Key, rel, err)
		}
	}
	return out, nil
}

// resolveTarget joins rel onto the target directory, rejecting absolute
// paths and traversal outside the target.
func (p *TemplateProducer) resolveTarget(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("payload path %q is absolute", rel)
	}
	target := filepath.Join(p.TargetDir, rel)
	base := filepath.Clean(p.TargetDir)
	if target != base && !strings.HasPrefix(target, base+string(filepath.Separator)) {
		return "", fmt.Errorf("payload path %q escapes the target directory", rel)
	}
	return target, nil
}

func (p *TemplateProducer) renderString(text string, data templateData) (string, error) {
	tmpl, err := template.New("payload").Funcs(p.funcs).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// decodePayload converts the opaque descriptor payload into the file
// schema. Payloads come from YAML registries as loosely typed maps, so a
// marshal round-trip is the simplest faithful decoding.
func decodePayload(raw any) (payload, error) {
	var pl payload
	if raw == nil {
		return pl, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return pl, fmt.Errorf("encode payload: %w", err)
	}
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return pl, fmt.Errorf("decode payload: %w", err)
	}
	return pl, nil
}
