package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumen-ui/lumen/pkg/dom"
	"github.com/lumen-ui/lumen/pkg/elref"
	"github.com/lumen-ui/lumen/pkg/inspect"
	"github.com/lumen-ui/lumen/pkg/reactive"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "lumen",
		Short: "Lumen reactive element reference toolkit",
	}

	root.AddCommand(newInspectCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lumen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lumen %s\n", version)
		},
	}
}

func newInspectCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve a demo document with live reference watches",
		Long: "Builds a small document, watches references of every flavor\n" +
			"(fixed, selector, reactive selector, forward-declared handle),\n" +
			"and serves them over the inspector HTTP API. A background loop\n" +
			"remounts one panel so websocket clients see live rebinds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(addr, interval)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8750", "listen address")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "panel remount interval")

	return cmd
}

func runInspect(addr string, interval time.Duration) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	metrics := dom.NewMetrics()
	doc := dom.NewDocument(dom.WithDocumentMetrics(metrics))

	doc.Root().AppendChild(
		dom.NewElement("div").SetID("app").AddClass("shell").
			AppendChild(dom.NewElement("header").SetID("top")).
			AppendChild(dom.NewElement("main").SetID("content")),
	)
	content, _ := doc.Query("#content")

	in := inspect.New(doc, inspect.WithLogger(log))
	defer in.Close()

	// One watch per reference flavor.
	in.Watch("header", elref.Query[*dom.Element](doc, "#top"))

	selector := reactive.NewSignal("#content")
	in.Watch("selected", elref.QuerySignal[*dom.Element](doc, selector))

	panelRef := dom.NewNodeRef[*dom.Element]()
	in.Watch("panel", elref.FromNodeRef[*dom.Element](panelRef))

	// Remount the panel on a timer so /ws clients see rebinds.
	go func() {
		mounted := false
		for range time.Tick(interval) {
			if mounted {
				el, _ := panelRef.PeekBinding().Get()
				doc.Unmount(el, panelRef)
			} else {
				doc.Mount(content, dom.NewElement("section").SetID("panel"), panelRef)
			}
			mounted = !mounted
		}
	}()

	log.Info("inspector listening", "addr", addr)
	return http.ListenAndServe(addr, in.Router())
}
