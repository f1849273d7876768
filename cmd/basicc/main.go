package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"

	"github.com/HicaroD/basicc/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("basicc: ")

	args, err := cli(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	opts, envs, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if args.BuildTypeSet {
		opts.BuildType = args.BuildType
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch args.Command {
	case COMMAND_HELP:
		fmt.Print(HELP_COMMAND)
	case COMMAND_ENV:
		fmt.Println("# env file")
		printEnvs(envs)
		fmt.Println("# effective")
		printEnvs(opts.Envs())
	case COMMAND_BUILD:
		if err := build(ctx, args, opts); err != nil {
			log.Fatal(err)
		}
	case COMMAND_WATCH:
		if err := watch(ctx, args, opts); err != nil {
			log.Fatal(err)
		}
	}
}

func printEnvs(envs map[string]string) {
	keys := make([]string, 0, len(envs))
	for k := range envs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s='%s'\n", k, envs[k])
	}
}
