package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"serialmodes/core"
	"serialmodes/host/board"
	"serialmodes/host/config"
	"serialmodes/host/relay"
	"serialmodes/protocol"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	quiet      = flag.Bool("quiet", false, "Do not print board output")
)

const clientKey = "$client"

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *device != "" {
		cfg.Serial.Device = *device
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}

	client, err := board.Dial(&cfg.Serial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	shell := ishell.New()
	shell.Set(clientKey, client)
	shell.SetPrompt(cfg.Serial.Device + " > ")
	for _, cmd := range commands() {
		shell.AddCmd(cmd)
	}

	reports := client.Reports()
	if cfg.Relay.Enabled() {
		mq, err := relay.Dial(cfg.Relay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer mq.Close()
		reports = tee(reports, relay.New(mq, cfg.Relay.TopicPrefix))
	}
	go printReports(shell, reports)

	if args := flag.Args(); len(args) > 0 {
		if err := shell.Process(args...); err != nil {
			glog.Fatalln(err)
		}
		return
	}
	shell.Println("serialmodes-host " + protocol.Version + ", connected to " + cfg.Serial.Device + ". Type help for commands.")
	shell.Run()
}

// tee relays every report and passes it on
func tee(in <-chan protocol.Report, r *relay.Relay) <-chan protocol.Report {
	out := make(chan protocol.Report, cap(in))
	go func() {
		defer close(out)
		for rep := range in {
			if err := r.Handle(rep); err != nil {
				glog.Errorf("relay: %v", err)
			}
			select {
			case out <- rep:
			default:
			}
		}
	}()
	return out
}

func printReports(shell *ishell.Shell, reports <-chan protocol.Report) {
	for rep := range reports {
		if *quiet {
			continue
		}
		shell.Println(rep.Line)
	}
}

func clientFrom(c *ishell.Context) *board.Client {
	return c.Get(clientKey).(*board.Client)
}

// frameCmd sends a fixed command frame
func frameCmd(name, help string) *ishell.Cmd {
	return &ishell.Cmd{
		Name: name,
		Help: help,
		Func: func(c *ishell.Context) {
			if err := clientFrom(c).Send(name); err != nil {
				c.Err(err)
			}
		},
	}
}

// commands has one shell command per firmware command, in menu order, plus
// send for raw frames
func commands() []*ishell.Cmd {
	var cmds []*ishell.Cmd
	for _, info := range core.NewDefaultRegistry().Commands() {
		cmds = append(cmds, frameCmd(info.Name.String(), info.Help))
	}
	return append(cmds,
		&ishell.Cmd{
			Name: "send",
			Help: "FRAME  send a raw 4-byte frame",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("usage: send FRAME"))
					return
				}
				if err := clientFrom(c).Send(c.Args[0]); err != nil {
					c.Err(err)
				}
			},
		},
	)
}
