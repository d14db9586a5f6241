// Package planner turns a planner configuration into a declared document
// and draws its pages.
//
// [Declare] is pure: it builds the [document.Document] (index, month and
// week pages, grid page sections, a paginated notes set, the tab group and
// the outline) without rendering anything. [Producer] is the default
// [document.Producer]. It lays every page out on the standard page template
// and draws it onto an SVG canvas, asking the resolver for navigation
// targets that pass 1 has already numbered:
//
//	doc, err := planner.Declare(cfg)
//	if err != nil {
//	    return err
//	}
//	b := document.NewBuilder(document.WithParallelism(4))
//	res, err := b.Build(ctx, doc, planner.NewProducer(cfg), sink)
//
// Page types:
//
//	index    one per document, lists months, grid sections and notes
//	monthly  month=N, lists the weeks mapped to the month
//	weekly   week=N, seven day columns with previous/next week links
//	grid     section=N, kind=K, page=N, free-form dot, lined, square or blank
//	notes    page=N, lined pages in the "notes" page set
//
// Weeks are spread evenly over the configured months; see [MonthOfWeek].
package planner
