package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	grpcx "github.com/cwrk-planet/meeting-service/internal/transport/grpc"

	"github.com/gookit/color"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const usage = `usage: meetingctl [flags] <command> [args]

commands:
  list                     all meetings
  create                   create a meeting (host = -user)
  join-code <code>         look up a meeting by room code (demo fallback unless -strict)
  roster <meetingID>       participants of a meeting
  chat <meetingID>         chat history
  say <meetingID> <text>   send a chat message as -user
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run возвращает код выхода, чтобы defer-ы успели отработать до os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("meetingctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", "localhost:9090", "gRPC address of meeting-service")
	user := fs.String("user", os.Getenv("USER"), "user id sent as x-user-id")
	strict := fs.Bool("strict", false, "join-code: fail instead of creating a demo meeting")
	timeout := fs.Duration("timeout", 5*time.Second, "per-call timeout")
	noColor := fs.Bool("no-color", false, "disable colors")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage); fs.PrintDefaults() }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *noColor {
		color.Disable()
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintln(stderr, color.Red.Sprintf("connect %s: %v", *addr, err))
		return 1
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if *user != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-user-id", *user)
	}

	cli := &cli{client: grpcx.NewClient(conn), out: stdout, user: *user, strict: *strict}
	if err := cli.run(ctx, fs.Args()); err != nil {
		fmt.Fprintln(stderr, color.Red.Sprintf("error: %v", err))
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}
