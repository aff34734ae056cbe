package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"salon_reviews/internal/adapters/upstream"
	"salon_reviews/internal/domain"
	"salon_reviews/internal/panel"
	"salon_reviews/internal/platform"
	"salon_reviews/internal/shared"
)

var (
	branchFlag  string
	ratingFlag  int
	sortFlag    string
	allFlag     bool
	workersFlag int
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Fetch the first page of reviews for a branch (or every branch with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, cfg, err := buildPanel(ctx)
		if err != nil {
			return err
		}
		if err := fetchBranches(ctx, p); err != nil {
			return err
		}

		if allFlag {
			return reviewsAllBranches(ctx, p, cfg)
		}

		if branchFlag == "" {
			return fmt.Errorf("--branch is required (or use --all)")
		}
		p.SelectBranch(branchFlag)
		if err := p.FetchReviews(ctx); err != nil {
			if msg := p.ErrorMessage(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			return err
		}

		visible := p.Visible(ratingFlag, panel.SortOrder(sortFlag))
		if len(visible) == 0 {
			fmt.Println("No reviews for this location yet.")
			return nil
		}
		for _, r := range visible {
			printReview(r)
		}
		return nil
	},
}

func printReview(r domain.Review) {
	fmt.Printf("%s  %s  %s\n", panel.DisplayName(r), panel.Stars(r.Rating), r.ReviewDate.Format(time.DateOnly))
	if r.Text != "" {
		fmt.Printf("  %s\n", r.Text)
	}
}

// reviewsAllBranches fans out one first-page fetch per branch, bounded by a
// weighted semaphore, and prints a per-branch summary.
func reviewsAllBranches(ctx context.Context, p *panel.Panel, cfg shared.Config) error {
	creds := p.Credentials()
	plat, ok := platform.Lookup(creds.Platform)
	if !ok {
		return fmt.Errorf("unknown platform %q", creds.Platform)
	}
	fetch := upstream.New(string(creds.Platform), cfg.UpstreamTimeout, cfg.UpstreamRPS)
	base := cfg.BaseURLs()[creds.Platform]

	sem := semaphore.NewWeighted(int64(workersFlag))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, b := range p.Branches() {
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(b domain.Branch) {
			defer wg.Done()
			defer sem.Release(1)

			url := plat.ReviewsURL(base, creds.BusinessID, b.ID, 0, cfg.PageSize)
			var payload map[string]any
			if err := fetch.GetJSON(ctx, url, plat.Username(creds.Email), creds.Password, &payload); err != nil {
				mu.Lock()
				fmt.Printf("%-30s fetch failed: %v\n", b.Name, err)
				mu.Unlock()
				return
			}
			reviews := plat.MapReviews(payload)
			mu.Lock()
			fmt.Printf("%-30s %d review(s)\n", b.Name, len(reviews))
			mu.Unlock()
		}(b)
	}

	wg.Wait()
	return nil
}

func init() {
	reviewsCmd.Flags().StringVar(&branchFlag, "branch", "", "branch id to fetch reviews for")
	reviewsCmd.Flags().IntVar(&ratingFlag, "rating", 0, "show only this exact star rating (0 = all)")
	reviewsCmd.Flags().StringVar(&sortFlag, "sort", string(panel.SortNewest), "sort order: newest or oldest")
	reviewsCmd.Flags().BoolVar(&allFlag, "all", false, "summarize reviews across every branch")
	reviewsCmd.Flags().IntVar(&workersFlag, "workers", 4, "concurrent branch fetches with --all")
}
