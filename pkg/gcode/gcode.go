// Package gcode emits Fanuc-dialect G-code for a cam.ToolpathResult, with
// modal optimisation of the motion body. The Y<->Z remap from the kernel's
// spindle-along-Y convention to CNC Z-up happens at exactly this boundary.
package gcode

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/basswood/kerncad/pkg/cam"
	"github.com/basswood/kerncad/pkg/sdf"
)

// Coolant selects the coolant code emitted after the spindle start.
type Coolant string

const (
	CoolantFlood Coolant = "flood"
	CoolantMist  Coolant = "mist"
	CoolantOff   Coolant = "off"
)

// CommentStyle selects how header and inline comments are delimited.
type CommentStyle string

const (
	CommentParen     CommentStyle = "paren"
	CommentSemicolon CommentStyle = "semicolon"
)

var workOffsetPattern = regexp.MustCompile(`^G5[4-9]$`)

// Config configures EmitFanucGCode. Zero-valued optional fields are
// resolved to their documented defaults by normalize before use.
type Config struct {
	ProgramNumber int
	WorkOffset    string
	Coolant       Coolant
	CommentStyle  CommentStyle
	DecimalPlaces int
	LineNumbers   bool
	RapidRate     float64

	FeedRate   float64
	PlungeRate float64
	RPM        float64
	SafeZ      float64

	ToolDiameter float64
	ToolName     string
	ShapeName    string
	StepoverPct  float64

	// Logger, if non-nil, receives one progress line per motion-body
	// pass boundary. The kernel itself has no I/O, so this is left nil
	// by default; a caller driving a long raster job's emission can set
	// it to watch progress.
	Logger *log.Logger
}

func (c Config) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

func (c Config) normalize() Config {
	out := c
	if out.ProgramNumber == 0 {
		out.ProgramNumber = 1001
	}
	if out.WorkOffset == "" {
		out.WorkOffset = "G54"
	}
	if out.Coolant == "" {
		out.Coolant = CoolantFlood
	}
	if out.CommentStyle == "" {
		out.CommentStyle = CommentParen
	}
	if out.DecimalPlaces == 0 {
		out.DecimalPlaces = 3
	}
	if out.RapidRate == 0 {
		out.RapidRate = 15000
	}
	if out.ToolName == "" {
		out.ToolName = "BALL NOSE SURFACING"
	}
	return out
}

func (c Config) comment(text string) string {
	if c.CommentStyle == CommentSemicolon {
		return "; " + text
	}
	return "(" + text + ")"
}

// EmitFanucGCode renders a complete Fanuc-dialect program for toolpath,
// applying the config's defaults and validating every field eagerly.
func EmitFanucGCode(toolpath *cam.ToolpathResult, config Config) (string, error) {
	c := config.normalize()
	if !workOffsetPattern.MatchString(c.WorkOffset) {
		return "", &sdf.InvalidParameterError{Op: "EmitFanucGCode", Field: "WorkOffset", Value: c.WorkOffset, Why: "InvalidWorkOffset: must match /G5[4-9]/"}
	}
	if c.FeedRate < 1 || c.FeedRate > 99999 {
		return "", &sdf.InvalidParameterError{Op: "EmitFanucGCode", Field: "FeedRate", Value: c.FeedRate, Why: "must be in [1, 99999]"}
	}
	if c.RPM < 1 || c.RPM > 99999 {
		return "", &sdf.InvalidParameterError{Op: "EmitFanucGCode", Field: "RPM", Value: c.RPM, Why: "must be in [1, 99999]"}
	}
	if c.SafeZ < 0 {
		return "", &sdf.InvalidParameterError{Op: "EmitFanucGCode", Field: "SafeZ", Value: c.SafeZ, Why: "must be non-negative"}
	}
	if toolpath == nil || len(toolpath.Points) == 0 {
		return "", &sdf.InvalidParameterError{Op: "EmitFanucGCode", Field: "toolpath.Points", Value: 0, Why: "toolpath has no motion points"}
	}
	if c.PlungeRate <= 0 {
		c.PlungeRate = c.FeedRate / 3
	}

	var b strings.Builder
	writeHeader(&b, c)

	b.WriteString("G90 G21 G17\n")
	fmt.Fprintf(&b, "G00 %s X%s Y%s Z%s\n", c.WorkOffset, formatNumber(0, c.DecimalPlaces), formatNumber(0, c.DecimalPlaces), formatNumber(c.SafeZ, c.DecimalPlaces))
	fmt.Fprintf(&b, "M03 S%s\n", formatInt(c.RPM))

	coolantOn := c.Coolant != CoolantOff
	if c.Coolant == CoolantFlood {
		b.WriteString("M08\n")
	} else if c.Coolant == CoolantMist {
		b.WriteString("M07\n")
	}

	c.logf("emitting O%04d: %d motion points, %d passes", c.ProgramNumber, len(toolpath.Points), toolpath.PassCount)
	writeMotionBody(&b, toolpath, c)

	b.WriteString("M05\n")
	if coolantOn {
		b.WriteString("M09\n")
	}
	b.WriteString("G00 G53 Z0.\n")
	b.WriteString("M30\n")

	body := b.String()
	if c.LineNumbers {
		body = addLineNumbers(body)
	}
	return "%\n" + body + "%\n", nil
}

// addLineNumbers prefixes every line with an N-word, numbered from N10 in
// steps of 10 per Fanuc convention. The bounding "%" tape markers are not
// part of body and are never numbered.
func addLineNumbers(body string) string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	for i, line := range lines {
		lines[i] = fmt.Sprintf("N%d %s", (i+1)*10, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeHeader(b *strings.Builder, c Config) {
	fmt.Fprintf(b, "O%04d %s\n", c.ProgramNumber, c.comment(c.ToolName))
	if c.ToolDiameter > 0 {
		b.WriteString(c.comment(fmt.Sprintf("TOOL: %sMM BALL NOSE", formatNumber(c.ToolDiameter, 1))) + "\n")
	}
	if c.ShapeName != "" {
		b.WriteString(c.comment("PART: "+c.ShapeName) + "\n")
	}
	b.WriteString(c.comment("DATE: "+time.Now().UTC().Format("2006-01-02")) + "\n")
	b.WriteString(c.comment(fmt.Sprintf("STEPOVER %s%% FEED %s RPM %s", formatNumber(c.StepoverPct, 0), formatNumber(c.FeedRate, 0), formatNumber(c.RPM, 0))) + "\n")
	b.WriteString(c.comment("SPINDLE AXIS IS Y IN TOOLPATH, REMAPPED TO CNC Z HERE") + "\n")
}

type modalState struct {
	lastCode string
	hasX     bool
	hasY     bool
	hasZ     bool
	x, y, z  float64
	hasF     bool
	f        float64
}

func writeMotionBody(b *strings.Builder, toolpath *cam.ToolpathResult, c Config) {
	st := modalState{
		lastCode: "G00",
		hasX:     true, x: 0,
		hasY: true, y: 0,
		hasZ: true, z: c.SafeZ,
	}
	pass := 0
	for _, pt := range toolpath.Points {
		x, y, z := pt.Position.X, pt.Position.Z, pt.Position.Y

		var code string
		var feed float64
		hasFeed := true
		switch pt.Kind {
		case cam.Rapid:
			code = "G00"
			hasFeed = false
			if st.lastCode == "G01" {
				pass++
				c.logf("pass %d complete", pass)
			}
		case cam.Cut:
			code = "G01"
			feed = c.FeedRate
		case cam.Plunge:
			code = "G01"
			feed = c.PlungeRate
		}

		var terms []string
		if code != st.lastCode {
			terms = append(terms, code)
			st.lastCode = code
			if code == "G00" {
				st.hasF = false
			}
		}
		if !st.hasX || x != st.x {
			terms = append(terms, "X"+formatNumber(x, c.DecimalPlaces))
			st.x, st.hasX = x, true
		}
		if !st.hasY || y != st.y {
			terms = append(terms, "Y"+formatNumber(y, c.DecimalPlaces))
			st.y, st.hasY = y, true
		}
		if !st.hasZ || z != st.z {
			terms = append(terms, "Z"+formatNumber(z, c.DecimalPlaces))
			st.z, st.hasZ = z, true
		}
		if hasFeed && (!st.hasF || feed != st.f) {
			terms = append(terms, "F"+formatNumber(feed, 0))
			st.f, st.hasF = feed, true
		}

		if len(terms) == 0 {
			continue
		}
		b.WriteString(strings.Join(terms, " "))
		b.WriteString("\n")
	}
}

// formatNumber applies toFixed-then-strip-trailing-zeros, retaining a
// trailing decimal point so the control reads the literal as a real.
func formatNumber(v float64, decimalPlaces int) string {
	s := fmt.Sprintf("%.*f", decimalPlaces, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
	} else {
		s += "."
	}
	if strings.HasSuffix(s, "-0.") {
		s = "0."
	}
	return s
}

func formatInt(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
