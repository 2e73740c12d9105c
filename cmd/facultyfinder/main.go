// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "facultyfinder",
		Usage: "Find faculty members by name, research area or topic",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the catalog (overrides storage.path)",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Catalog backend: badger or sqlite (overrides storage.backend)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Clean scraped profiles and replace the catalog",
				ArgsUsage: "FILE",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "clean",
						Usage: "Input is already-cleaned records, not scraped profiles",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of profiles cleaned concurrently",
						Value: 8,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Resolve a query against the catalog",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print every stage of the cascade",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print matched records as JSON",
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Print one faculty record",
				ArgsUsage: "ID",
				Action:    showCommand,
			},
			{
				Name:   "list",
				Usage:  "List the catalog",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "specialization",
						Aliases: []string{"s"},
						Usage:   "Only records with a specialization containing this keyword",
					},
					&cli.StringFlag{
						Name:  "bio",
						Usage: "Only records whose biography contains this phrase",
					},
				},
			},
		},
	}
}
