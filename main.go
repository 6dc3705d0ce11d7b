package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-raytracer/cmd"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bvh-raytracer"
	app.Usage = "render scenes with a Whitted or path tracing integrator over a BVH"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable development logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Build the scene, partition it with a BVH and accumulate the requested number
of frames. Settings come from --config and are overridden by flags.`,
			Flags:  append(append([]cli.Flag{}, cmd.SceneFlags...), cmd.RenderFlags...),
			Action: cmd.RenderScene,
		},
		{
			Name:   "inspect",
			Usage:  "print BVH statistics for every split policy",
			Flags:  cmd.SceneFlags,
			Action: cmd.InspectScene,
		},
		{
			Name:      "scenes",
			Usage:     "list builtin scenes and YAML scene files",
			ArgsUsage: "[directory]",
			Action:    cmd.ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
