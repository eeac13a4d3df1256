package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/argp"
)

type Noder struct {
	Scale    float64 `short:"s" desc:"Scale factor, coordinates are rounded to a grid of size 1/scale (default 1)"`
	OffsetX  float64 `name:"offset-x" desc:"Offset subtracted from X before scaling"`
	OffsetY  float64 `name:"offset-y" desc:"Offset subtracted from Y before scaling"`
	Noder    string  `short:"n" desc:"Noder: snapround, simple or sweep (default snapround)"`
	From     string  `short:"f" desc:"Input format: wkt, geojson, osm or txt (default by extension)"`
	To       string  `short:"t" desc:"Output format: wkt, geojson, svg or txt (default by extension)"`
	Project  int     `short:"p" desc:"EPSG code to project WGS84 input to before noding, eg. 32631 for UTM 31N"`
	Keys     string  `short:"k" desc:"Comma separated OSM tag keys of ways to keep, eg. highway,railway"`
	Validate bool    `desc:"Check that the result is fully noded"`
	Config   string  `short:"c" desc:"TOML job file, command line options take precedence"`
	Verbose  bool    `short:"v" desc:"Verbose output"`
	Output   string  `short:"o" desc:"Output file, - for stdout"`
	Input    string  `index:"0" desc:"Input file, - for stdin"`
}

func main() {
	root := argp.NewCmd(&Noder{}, "Node line segments on a scaled integer grid")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Noder) Run() error {
	level := log.InfoLevel
	if cmd.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	job := cmd.job()
	if cmd.Config != "" {
		config, err := LoadJob(cmd.Config)
		if err != nil {
			return err
		}
		given := givenFlags(os.Args[1:])
		if cmd.Input != "" {
			given["input"] = true
		}
		job = config.Override(job, given)
		logger.Debug("loaded config", "file", cmd.Config)
	}
	job = job.Merge(DefaultJob)

	if job.Input == "" {
		return argp.ShowUsage
	}
	if err := job.Run(logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("noding failed", "err", err)
		return err
	}
	return nil
}

// shortFlags maps the short options to the TOML keys of the job.
var shortFlags = map[byte]string{
	's': "scale",
	'n': "noder",
	'f': "from",
	't': "to",
	'p': "project",
	'k': "keys",
	'o': "output",
	'c': "config",
}

// givenFlags returns the TOML keys of the options present in args, so that options given explicitly override the job file even when set to a zero value.
func givenFlags(args []string) map[string]bool {
	given := map[string]bool{}
	for _, arg := range args {
		if arg == "--" {
			break
		} else if strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[2:], "=")
			given[strings.ReplaceAll(name, "-", "_")] = true
		} else if strings.HasPrefix(arg, "-") {
			// skip grouped boolean short options such as -v
			for i := 1; i < len(arg); i++ {
				if arg[i] == 'v' {
					continue
				} else if name, ok := shortFlags[arg[i]]; ok {
					given[name] = true
				}
				break
			}
		}
	}
	return given
}

func (cmd *Noder) job() Job {
	job := Job{
		Input:    cmd.Input,
		Output:   cmd.Output,
		From:     cmd.From,
		To:       cmd.To,
		Noder:    cmd.Noder,
		Scale:    cmd.Scale,
		OffsetX:  cmd.OffsetX,
		OffsetY:  cmd.OffsetY,
		Project:  cmd.Project,
		Validate: cmd.Validate,
	}
	if cmd.Keys != "" {
		job.Keys = strings.Split(cmd.Keys, ",")
	}
	return job
}
