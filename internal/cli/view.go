package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/vtable/internal/dataset"
	"github.com/rshade/vtable/internal/table"
	"github.com/rshade/vtable/internal/tui"
)

const (
	defaultPlainHeight = 40
	defaultSeed        = 1
)

type viewFlags struct {
	generate  int
	seed      int64
	sort      string
	overscan  int
	rowHeight float64
	wrap      bool
	cycle     string
	multiSort bool
	collation string
	plain     bool
	height    int
	maxWidth  int
}

func newViewCmd(st *state) *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "view [files...]",
		Short: "Browse rows from CSV, JSON or YAML files",
		Long: `Opens an interactive, virtualized table over the given files. Rows from
several files are concatenated in argument order. When stdout is not a
terminal, or with --plain, the first window of rows is printed instead.`,
		Example: `  vtable view people.csv more.json
  vtable view --generate 50000 --sort lastName,age:desc --multi-sort
  vtable view data.yaml --plain --height 20`,
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, st, args, flags)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.generate, "generate", 0, "generate N sample rows instead of reading files")
	f.Int64Var(&flags.seed, "seed", defaultSeed, "seed for --generate")
	f.StringVar(&flags.sort, "sort", "", `initial sort, e.g. "age:desc,lastName"`)
	f.IntVar(&flags.overscan, "overscan", 0, "rows rendered beyond each viewport edge (default from config)")
	f.Float64Var(&flags.rowHeight, "row-height", 0, "estimated row height in lines (default from config)")
	f.BoolVar(&flags.wrap, "wrap", false, "wrap long cell text instead of truncating")
	f.StringVar(&flags.cycle, "cycle", "", "sort toggle cycle: asc-desc-none or asc-desc")
	f.BoolVar(&flags.multiSort, "multi-sort", false, "allow sorting by several columns")
	f.StringVar(&flags.collation, "collation", "", "BCP 47 language tag for string ordering, e.g. de or sv")
	f.BoolVar(&flags.plain, "plain", false, "print plain text instead of the interactive view")
	f.IntVar(&flags.height, "height", defaultPlainHeight, "viewport height in lines for plain output")
	f.IntVar(&flags.maxWidth, "max-width", 0, "maximum column width (default from config)")

	return cmd
}

func runView(cmd *cobra.Command, st *state, args []string, flags viewFlags) error {
	ds, source, err := loadRows(cmd, args, flags)
	if err != nil {
		return err
	}

	tc := st.cfg.Table
	if cmd.Flags().Changed("overscan") {
		tc.Overscan = flags.overscan
	}
	if cmd.Flags().Changed("row-height") {
		tc.RowHeight = flags.rowHeight
	}
	if cmd.Flags().Changed("cycle") {
		tc.ToggleCycle = flags.cycle
	}
	if cmd.Flags().Changed("collation") {
		tc.Collation = flags.collation
	}
	if cmd.Flags().Changed("max-width") {
		tc.MaxColumnWidth = flags.maxWidth
	}
	if tc.RowHeight == 0 {
		tc.RowHeight = 1
	}
	tc.MultiSort = tc.MultiSort || flags.multiSort
	tc.Wrap = tc.Wrap || flags.wrap

	cycle, err := table.ParseToggleCycle(tc.ToggleCycle)
	if err != nil {
		return err
	}

	interactive := !flags.plain && writerIsTerminal(cmd)

	opts := table.DefaultOptions()
	opts.Overscan = tc.Overscan
	opts.RowHeight = tc.RowHeight
	opts.Cycle = cycle
	opts.MultiSort = tc.MultiSort
	opts.Collation = tc.Collation
	opts.Logger = st.logger
	opts.OnWarning = func(w error) {
		if !interactive {
			cmd.PrintErrf("Warning: %v\n", w)
		}
	}

	tbl := table.New(ds.Columns, opts)
	tbl.SetRows(ds.Rows)

	if flags.sort != "" {
		spec, parseErr := table.ParseSortSpec(flags.sort)
		if parseErr != nil {
			return parseErr
		}
		tbl.SetSort(spec)
	}

	st.logger.Info().Int("rows", len(ds.Rows)).Int("columns", len(ds.Columns)).
		Bool("interactive", interactive).Msg("table ready")

	if !interactive {
		frame := tbl.Resize(float64(max(flags.height, 0)))
		widths := tui.ColumnWidths(tbl, tc.MaxColumnWidth)
		_, err = fmt.Fprint(cmd.OutOrStdout(), tui.RenderFrame(frame, widths, tc.Wrap))
		return err
	}

	model := tui.New(tbl, tui.Options{
		Title:          "vtable",
		Subtitle:       source,
		Wrap:           tc.Wrap,
		MaxColumnWidth: tc.MaxColumnWidth,
		Logger:         st.logger,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// loadRows reads the files named in args or generates sample rows, and
// describes the source for the title block.
func loadRows(cmd *cobra.Command, args []string, flags viewFlags) (*dataset.Dataset, string, error) {
	switch {
	case flags.generate < 0:
		return nil, "", fmt.Errorf("--generate must be >= 0, got %d", flags.generate)
	case flags.generate > 0 && len(args) > 0:
		return nil, "", errors.New("--generate cannot be combined with input files")
	case flags.generate > 0:
		ds := dataset.Generate(flags.generate, flags.seed)
		return ds, fmt.Sprintf("%d generated people (seed %d)", flags.generate, flags.seed), nil
	case len(args) == 0:
		return nil, "", errors.New("no input: pass one or more files or --generate N")
	}

	ds, err := dataset.LoadAll(cmd.Context(), args)
	if err != nil {
		return nil, "", err
	}
	return ds, strings.Join(args, ", "), nil
}
