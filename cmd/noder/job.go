package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/tdewolff/noding"
	"github.com/tdewolff/noding/geoio"
)

var errNoInput = errors.New("no input file")

// Job is a noding job, either loaded from a TOML file or given on the command line.
type Job struct {
	Input    string   `toml:"input"`
	Output   string   `toml:"output"`
	From     string   `toml:"from"`
	To       string   `toml:"to"`
	Noder    string   `toml:"noder"`
	Scale    float64  `toml:"scale"`
	OffsetX  float64  `toml:"offset_x"`
	OffsetY  float64  `toml:"offset_y"`
	Project  int      `toml:"project"`
	Keys     []string `toml:"keys"`
	Validate bool     `toml:"validate"`
}

// DefaultJob holds the values used for settings that are not given.
var DefaultJob = Job{
	Output: "-",
	Noder:  "snapround",
	Scale:  1.0,
}

// LoadJob reads a job from a TOML file.
func LoadJob(filename string) (Job, error) {
	job := Job{}
	if _, err := toml.DecodeFile(filename, &job); err != nil {
		return Job{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return job, nil
}

// Merge returns the job with all zero settings taken from other.
func (job Job) Merge(other Job) Job {
	if job.Input == "" {
		job.Input = other.Input
	}
	if job.Output == "" {
		job.Output = other.Output
	}
	if job.From == "" {
		job.From = other.From
	}
	if job.To == "" {
		job.To = other.To
	}
	if job.Noder == "" {
		job.Noder = other.Noder
	}
	if job.Scale == 0.0 {
		job.Scale = other.Scale
	}
	if job.OffsetX == 0.0 {
		job.OffsetX = other.OffsetX
	}
	if job.OffsetY == 0.0 {
		job.OffsetY = other.OffsetY
	}
	if job.Project == 0 {
		job.Project = other.Project
	}
	if len(job.Keys) == 0 {
		job.Keys = other.Keys
	}
	job.Validate = job.Validate || other.Validate
	return job
}

// Override returns the job with the settings named in set taken from other, whether or not they are zero. Names are the TOML keys.
func (job Job) Override(other Job, set map[string]bool) Job {
	if set["input"] {
		job.Input = other.Input
	}
	if set["output"] {
		job.Output = other.Output
	}
	if set["from"] {
		job.From = other.From
	}
	if set["to"] {
		job.To = other.To
	}
	if set["noder"] {
		job.Noder = other.Noder
	}
	if set["scale"] {
		job.Scale = other.Scale
	}
	if set["offset_x"] {
		job.OffsetX = other.OffsetX
	}
	if set["offset_y"] {
		job.OffsetY = other.OffsetY
	}
	if set["project"] {
		job.Project = other.Project
	}
	if set["keys"] {
		job.Keys = other.Keys
	}
	if set["validate"] {
		job.Validate = other.Validate
	}
	return job
}

// NewNoder returns the noder for the job, wrapped in a ScaledNoder.
func (job Job) NewNoder() (*noding.ScaledNoder, error) {
	var noder noding.Noder
	switch strings.ToLower(job.Noder) {
	case "snapround", "snap":
		noder = noding.NewSnapRounder()
	case "simple":
		noder = noding.NewSimpleNoder()
	case "sweep":
		noder = noding.NewSweepNoder()
	default:
		return nil, fmt.Errorf("%w: unknown noder %q", noding.ErrInvalidConfiguration, job.Noder)
	}
	return noding.NewScaledNoderWithOffset(noder, job.Scale, job.OffsetX, job.OffsetY)
}

// progress tracks the start time of a stage and logs its completion with the elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// Run reads the input, nodes it and writes the result.
func (job Job) Run(logger *log.Logger, stdin io.Reader, stdout io.Writer) error {
	if job.Input == "" {
		return errNoInput
	}
	from, to := job.From, job.To
	if from == "" {
		from = geoio.FormatFromFilename(job.Input)
		if from == "" {
			from = geoio.WKT
		}
	}
	if to == "" {
		to = geoio.FormatFromFilename(job.Output)
		if to == "" {
			to = geoio.WKT
		}
	}

	noder, err := job.NewNoder()
	if err != nil {
		return err
	}
	logger.Debug("noder", "type", job.Noder, "scale", noder.Scale(), "integer", noder.IsIntegerPrecision())

	p := newProgress(logger)
	ss, err := job.read(from, stdin)
	if err != nil {
		return err
	}
	p.done("read", "segment_strings", len(ss), "format", from)

	var proj *geoio.Projection
	if job.Project != 0 {
		proj = geoio.NewProjection(4326, job.Project)
		proj.Forward(ss)
		logger.Debug("projected", "from", "EPSG:4326", "to", fmt.Sprintf("EPSG:%d", job.Project))
	}

	p = newProgress(logger)
	if err := noder.ComputeNodes(ss); err != nil {
		return err
	}
	noded, err := noder.NodedSubstrings()
	if err != nil {
		return err
	}
	p.done("noded", "substrings", len(noded))

	if job.Validate {
		p = newProgress(logger)
		if err := noding.ValidateNoding(noded); err != nil {
			return err
		}
		p.done("validated")
	}

	if proj != nil {
		proj.Inverse(noded)
	}
	return job.write(to, stdout, noded)
}

func (job Job) read(format string, stdin io.Reader) ([]*noding.SegmentString, error) {
	r := stdin
	if job.Input != "-" {
		f, err := os.Open(job.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if format == geoio.OSM {
		return geoio.ReadOSM(r, job.Keys...)
	}
	return geoio.Read(format, r)
}

func (job Job) write(format string, stdout io.Writer, ss []*noding.SegmentString) error {
	if job.Output == "" || job.Output == "-" {
		return geoio.Write(format, stdout, ss)
	}

	f, err := os.Create(job.Output)
	if err != nil {
		return err
	}
	if err := geoio.Write(format, f, ss); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
