package formatter

import (
	"strconv"
	"strings"

	"github.com/hollowthesilver/asynclogger/colors"
	"github.com/hollowthesilver/asynclogger/core"
)

// Formatter defines the interface for event formatters.
type Formatter interface {
	// Format renders an event into bytes, including the trailing newline.
	Format(e *core.Event) ([]byte, error)
}

// Default templates. The console template carries color tags; the file
// template is plain.
const (
	DefaultConsoleTemplate = "[<red>{time}<reset>] [<level_color>{level}<reset>] " +
		"[<yellow>{context}<reset>] <green>{name}<reset> {message}"
	DefaultFileTemplate = "[{time}] [{level}] [{context}] {name}   {message}"

	DefaultTimeFormat = "2006-01-02 15:04:05"
)

// levelColorTag is the reserved tag resolving to the severity color.
const levelColorTag = "<level_color>"

// Column widths used by the default templates.
const (
	levelWidth   = 8
	contextWidth = 17
)

// DefaultColors returns the default severity-to-color assignments.
func DefaultColors() map[core.Level]string {
	return map[core.Level]string{
		core.DebugLevel:    "gray+bold",
		core.InfoLevel:     "magenta+bold",
		core.WarningLevel:  "yellow+bold",
		core.ErrorLevel:    "red+bold",
		core.CriticalLevel: "muted_red+bold",
	}
}

// Config holds template formatter configuration.
type Config struct {
	// Name is the logger name substituted for {name}.
	Name string
	// Template is the display template (default: DefaultConsoleTemplate).
	Template string
	// TimeFormat is the {time} layout (default: DefaultTimeFormat).
	TimeFormat string
	// ColorEnabled resolves tags to escape codes; when false all tags
	// are stripped instead.
	ColorEnabled bool
	// Colors overrides entries of DefaultColors per level.
	Colors map[core.Level]string
}

// TemplateFormatter renders events through a placeholder template with
// inline color tags.
type TemplateFormatter struct {
	name         string
	template     string
	timeFormat   string
	colorEnabled bool
	colors       map[core.Level]string
}

// NewTemplateFormatter creates a template formatter, merging any color
// overrides over the per-level defaults.
func NewTemplateFormatter(cfg Config) *TemplateFormatter {
	if cfg.Template == "" {
		cfg.Template = DefaultConsoleTemplate
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}
	merged := DefaultColors()
	for level, name := range cfg.Colors {
		merged[level] = name
	}
	return &TemplateFormatter{
		name:         cfg.Name,
		template:     cfg.Template,
		timeFormat:   cfg.TimeFormat,
		colorEnabled: cfg.ColorEnabled,
		colors:       merged,
	}
}

// Format renders the event. Color enabled: the level color replaces the
// reserved tag, remaining tags resolve via colors.Apply, and a reset
// terminates the line when anything resolved. Color disabled: every tag
// is stripped from both the template and the rendered output.
func (f *TemplateFormatter) Format(e *core.Event) ([]byte, error) {
	line := f.Render(e)
	return append([]byte(line), '\n'), nil
}

// Render is Format without the trailing newline.
func (f *TemplateFormatter) Render(e *core.Event) string {
	if !f.colorEnabled {
		line := f.expand(colors.Strip(f.template), e)
		return colors.Strip(line)
	}

	tmpl := f.template
	levelResolved := false
	if name, ok := f.colors[e.Level]; ok {
		if code, err := colors.Get(name); err == nil {
			tmpl = strings.ReplaceAll(tmpl, levelColorTag, code)
			levelResolved = true
		}
	}
	// Unknown levels render with no color at all.
	tmpl = strings.ReplaceAll(tmpl, levelColorTag, "")

	line := colors.Apply(f.expand(tmpl, e))
	if levelResolved && !strings.HasSuffix(line, colors.Reset) {
		line += colors.Reset
	}
	return line
}

// expand substitutes the placeholder tokens.
func (f *TemplateFormatter) expand(tmpl string, e *core.Event) string {
	ctx := e.Caller.Context
	if ctx == "" {
		ctx = core.DefaultContext
	}
	r := strings.NewReplacer(
		"{time}", e.Time.Format(f.timeFormat),
		"{level}", padRight(e.Level.String(), levelWidth),
		"{context}", center(ctx, contextWidth),
		"{name}", f.name,
		"{file}", e.Caller.ShortFile,
		"{line}", strconv.Itoa(e.Caller.Line),
		"{message}", e.Message,
	)
	return r.Replace(tmpl)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// center pads s to width, extra space going to the right.
func center(s string, width int) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
