package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/core/langhint"
	"github.com/habibaehabb05/Factify/internal/core/version"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/services/analysis/domain"
	analysissvc "github.com/habibaehabb05/Factify/internal/services/analysis/service"
	knowledge "github.com/habibaehabb05/Factify/internal/services/knowledge/domain"
	knowledgesvc "github.com/habibaehabb05/Factify/internal/services/knowledge/service"

	"github.com/spf13/cobra"
)

// cliEnv holds the seams commands reach through
type cliEnv struct {
	backends func() *app.Context
	readFile func(string) ([]byte, error)
}

func defaultEnv() cliEnv {
	return cliEnv{
		backends: func() *app.Context { return app.FromConfig(config.New()) },
		readFile: os.ReadFile,
	}
}

func newRootCmd(env cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "factify-check",
		Short:         "Fact-check a claim from the terminal",
		Version:       version.Info().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, c := range []*cobra.Command{analyzeCmd(env), statusCmd(env), queryCmd(env)} {
		root.AddCommand(withErrorPrint(c))
	}
	return root
}

// withErrorPrint reports the command's error on stderr as the user facing message
func withErrorPrint(c *cobra.Command) *cobra.Command {
	run := c.RunE
	c.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", perr.WireFrom(err).Message)
		}
		return err
	}
	return c
}

func analyzeCmd(env cliEnv) *cobra.Command {
	var (
		kind, content, file, prep string
		asJSON                    bool
	)
	c := &cobra.Command{
		Use:   "analyze",
		Short: "Run the pipeline on text, an article URL, or an image",
		Example: `  factify-check analyze --content "The earth is flat"
  factify-check analyze --type url --content https://example.com/story
  factify-check analyze --type image --file photo.png --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := domain.Request{Type: domain.Kind(kind), Content: content, Preprocessing: domain.Preprocessing(prep)}
			if file != "" {
				b, err := env.readFile(file)
				if err != nil {
					return perr.Wrapf(err, perr.ErrorCodeInput, "read %s", file)
				}
				req.Content = string(b)
				if req.Type == domain.KindURL {
					req.Content = strings.TrimSpace(req.Content)
				}
				if req.Type == domain.KindImage {
					req.Content = base64.StdEncoding.EncodeToString(b)
				}
			}
			if strings.TrimSpace(req.Content) == "" {
				return perr.Inputf("one of --content or --file is required")
			}

			be := env.backends()
			svc := analysissvc.New(analysissvc.Deps{
				LLM:     be.LLM,
				Search:  be.Search,
				Scraper: be.Scraper,
				OCR:     be.OCR,
			})
			out, err := svc.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printVerdict(cmd.OutOrStdout(), req, out)
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&kind, "type", "t", string(domain.KindText), "input kind: text, url or image")
	f.StringVarP(&content, "content", "c", "", "claim text, article URL, or base64 image")
	f.StringVarP(&file, "file", "f", "", "read content from a file (raw bytes for --type image)")
	f.StringVarP(&prep, "preprocessing", "p", string(domain.PreprocessNone), "none or clean")
	f.BoolVar(&asJSON, "json", false, "print the raw response object")
	c.MarkFlagsMutuallyExclusive("content", "file")
	return c
}

func statusCmd(env cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which backends are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			be := env.backends()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "BACKEND\tREADY\tDETAIL\n")
			for _, b := range be.Report() {
				fmt.Fprintf(w, "%s\t%t\t%s\n", b.Name, b.Ready, b.Detail)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			llm := "missing_key"
			if be.LLMReady() {
				llm = "ready"
			}
			bi := version.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "\nllm_status: %s\nversion: %s (%s)\n", llm, bi.Version, bi.Commit)
			return nil
		},
	}
}

func queryCmd(env cliEnv) *cobra.Command {
	var (
		question string
		k        int
	)
	c := &cobra.Command{
		Use:   "query",
		Short: "Look up the built-in knowledge passages closest to a question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := knowledgesvc.New(env.backends().Embedder)
			res, err := svc.Query(cmd.Context(), knowledge.QueryInput{Question: question, K: k})
			if err != nil {
				return err
			}
			for i, m := range res.Matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %.3f  %s\n", i+1, m.Score, m.Text)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&question, "question", "q", "", "question to look up")
	c.Flags().IntVar(&k, "k", knowledgesvc.DefaultK, "number of matches")
	_ = c.MarkFlagRequired("question")
	return c
}

func printVerdict(w io.Writer, req domain.Request, out domain.Response) {
	fmt.Fprintf(w, "Verdict:     %s\n", out.Verdict)
	fmt.Fprintf(w, "Confidence:  %g\n", out.ConfidenceScore)
	fmt.Fprintf(w, "Explanation: %s\n", out.Explanation)
	if len(out.Sources) > 0 {
		fmt.Fprintln(w, "Sources:")
		for _, s := range out.Sources {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	if req.WithDefaults().Type == domain.KindText {
		if h := langhint.Detect(req.Content); h.Script != "" {
			fmt.Fprintf(w, "Script:      %s %s\n", h.Script, h.Lang)
		}
	}
	for _, v := range out.Violations {
		fmt.Fprintf(w, "warning: %s\n", v)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
