package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/jobboard/internal/config"
	"github.com/user/jobboard/internal/listing"
	"github.com/user/jobboard/internal/posting"
)

var (
	jsonOutput      bool
	plaintextOutput bool
	exclusiveFlag   bool
)

var listCmd = &cobra.Command{
	Use:   "list [title...]",
	Short: "Print job postings",
	Long:  "Fetch job postings once and print the promoted and other listings, optionally filtered by a title substring.",
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if exclusiveFlag {
			cfg.Listing.Others = listing.OthersExcludePromoted.String()
		}

		app, err := newApp(cfg, verboseFlag)
		if err != nil {
			return err
		}
		defer app.Close()

		app.session.Initialize(cmd.Context())
		app.session.SetSearchTerm(term)
		v := app.session.View()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, v)
		}
		if plaintextOutput {
			return outputPlaintext(out, v)
		}
		return outputDefault(out, v)
	},
}

type listOutput struct {
	Promoted []posting.Posting `json:"promoted"`
	Others   []posting.Posting `json:"others"`
}

func outputJSON(w io.Writer, v listing.View) error {
	data, err := json.MarshalIndent(listOutput{Promoted: v.Promoted, Others: v.Others}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputPlaintext(w io.Writer, v listing.View) error {
	for _, p := range v.Promoted {
		fmt.Fprintf(w, "promoted\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Company, p.Link)
	}
	for _, p := range v.Others {
		fmt.Fprintf(w, "other\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Company, p.Link)
	}
	return nil
}

func outputDefault(w io.Writer, v listing.View) error {
	if v.Empty() {
		fmt.Fprintln(w, "No jobs found.")
		return nil
	}
	if len(v.Promoted) > 0 {
		fmt.Fprintln(w, "Promoted Jobs")
		printPostings(w, v.Promoted)
	}
	fmt.Fprintln(w, "All Other Job Listings")
	printPostings(w, v.Others)
	return nil
}

func printPostings(w io.Writer, postings []posting.Posting) {
	for i, p := range postings {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		for _, line := range []string{p.Company, p.Compensation, p.Location, p.Status, p.Type} {
			if line != "" {
				fmt.Fprintf(w, "   %s\n", line)
			}
		}
		if p.Link != "" {
			fmt.Fprintf(w, "   %s\n", p.Link)
		}
		fmt.Fprintln(w)
	}
}

func init() {
	listCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&plaintextOutput, "plaintext", "p", false, "Output as plaintext")
	listCmd.Flags().BoolVar(&exclusiveFlag, "exclusive", false, "Leave promoted postings out of the other listings")
	rootCmd.AddCommand(listCmd)
}
