package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "BlinkShare"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used to start the main service including all apis.`,
		},
		{
			Action:      server.startWsProxy,
			Name:        "proxy",
			Usage:       "Start service proxy",
			Flags:       []cli.Flag{},
			Category:    "Websocket",
			Description: `Used for direct connection to clients via websocket.`,
		},
	}

	s.app = app
}
