package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/notidash/internal/api"
	"github.com/notidash/internal/config"
	"github.com/notidash/internal/format"
	"github.com/notidash/internal/linkflow"
	"github.com/notidash/internal/models"
	"github.com/notidash/internal/pager"
	"github.com/notidash/internal/state"
	"github.com/notidash/internal/tui/app"
	"github.com/notidash/pkg/logger"
	"github.com/notidash/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	client  *api.Client
	store   *state.Store
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "notidash",
		Short: "Terminal client for the notification dashboard",
		Long: `notidash talks to the personal notification dashboard backend:
module settings, delivery logs, scheduled jobs, reminders, the finance
watchlist, and account linking - from the terminal or a full-screen
dashboard (notidash dash).`,
		PersistentPreRunE:  initializeApp,
		PersistentPostRunE: teardownApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(dashCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(logsCmd())
	rootCmd.AddCommand(jobsCmd())
	rootCmd.AddCommand(testCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(remindersCmd())
	rootCmd.AddCommand(watchlistCmd())
	rootCmd.AddCommand(alertsCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(linkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	limiter := ratelimit.NewMultiLimiter()
	limiter.AddLimiter(ratelimit.LimiterBackend, cfg.RateLimit.BackendRequestsPerSecond, int(cfg.RateLimit.BackendRequestsPerSecond*2))
	limiter.AddLimiter(ratelimit.LimiterQuotes, cfg.RateLimit.QuoteRequestsPerSecond, int(cfg.RateLimit.QuoteRequestsPerSecond*2)+1)

	var opts []api.Option
	if cfg.Server.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Server.Timeout)
		if err != nil {
			return fmt.Errorf("invalid server.timeout: %w", err)
		}
		opts = append(opts, api.WithTimeout(timeout))
	} else {
		opts = append(opts, api.WithTimeout(0))
	}
	client = api.NewClient(cfg.Server.BaseURL, limiter, log, opts...)

	store, err = state.Open(cfg.State.DSN)
	if err != nil {
		return fmt.Errorf("failed to open local state: %w", err)
	}

	return nil
}

func teardownApp(cmd *cobra.Command, args []string) error {
	if store != nil {
		return store.Close()
	}
	return nil
}

func printTable(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// ============ DASHBOARD ============

func dashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open the full-screen dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := app.New(context.Background(), client, store, app.Config{
				PageSize:            cfg.Logs.PageSize,
				RecentLimit:         cfg.Logs.RecentLimit,
				DefaultReminderTime: cfg.Reminders.DefaultTime,
			}, log)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// ============ STATUS ============

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show module and scheduler status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			scheduler, err := client.SchedulerStatus(ctx)
			if err != nil {
				return err
			}
			running := "stopped"
			if scheduler.IsRunning {
				running = "running"
			}
			fmt.Printf("Scheduler: %s (%d jobs)\n\n", running, scheduler.JobCount)

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("MODULE", "ENABLED", "NEXT RUN", "LAST RUN", "LAST STATUS")
			for _, category := range models.Categories() {
				status, err := client.ModuleStatus(ctx, category)
				if err != nil {
					// One module failing never hides the others.
					tbl.AddRow(string(category), format.Placeholder, format.Placeholder, format.Placeholder, err.Error())
					continue
				}
				nextRun := format.DateTime(status.NextRunTime)
				if status.USNextRunTime != nil || status.KRNextRunTime != nil {
					nextRun = fmt.Sprintf("US %s / KR %s",
						format.DateTime(status.USNextRunTime), format.DateTime(status.KRNextRunTime))
				}
				tbl.AddRow(
					string(category),
					format.ActiveBadge(status.IsActive),
					nextRun,
					format.DateTime(status.LastRunTime),
					format.StatusBadge(status.LastStatus),
				)
			}
			printTable(tbl)

			if auth, err := client.AuthStatus(ctx); err == nil {
				fmt.Println()
				for _, provider := range models.Providers() {
					fmt.Printf("%-10s %s\n", provider, format.ConnectedBadge(auth.Connected(provider)))
				}
			}
			return nil
		},
	}
}

// ============ SETTINGS ============

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Module settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := client.ListSettings(context.Background())
			if err != nil {
				return err
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("MODULE", "ENABLED", "NOTIFY AT")
			for _, s := range settings {
				tbl.AddRow(string(s.Category), format.ActiveBadge(s.IsActive), s.NotificationTime)
			}
			printTable(tbl)
			return nil
		},
	}

	cmd.AddCommand(settingsSetCmd())
	return cmd
}

func settingsSetCmd() *cobra.Command {
	var enable, disable bool
	var notifyAt string

	cmd := &cobra.Command{
		Use:   "set <module>",
		Short: "Change one module's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return fmt.Errorf("--enable and --disable are mutually exclusive")
			}
			update := models.SettingUpdate{}
			if enable {
				v := true
				update.IsActive = &v
			}
			if disable {
				v := false
				update.IsActive = &v
			}
			if notifyAt != "" {
				update.NotificationTime = &notifyAt
			}
			if update.IsActive == nil && update.NotificationTime == nil {
				return fmt.Errorf("nothing to change: pass --enable, --disable or --at")
			}

			category := models.Category(args[0])
			if err := client.UpdateSetting(context.Background(), category, update); err != nil {
				return err
			}
			fmt.Printf("Settings saved for %s\n", category)
			return nil
		},
	}

	cmd.Flags().BoolVar(&enable, "enable", false, "Enable the module")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable the module")
	cmd.Flags().StringVar(&notifyAt, "at", "", "Notification time (HH:MM)")
	return cmd
}

// ============ LOGS ============

func logsCmd() *cobra.Command {
	var page int
	var category, status string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse delivery logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pager.New(cfg.Logs.PageSize)
			p.SetPage(page)

			filter := models.LogFilter{
				Category: models.Category(category),
				Status:   models.RunStatus(strings.ToUpper(status)),
				Limit:    p.PageSize,
				Offset:   p.Offset(),
			}
			result, err := client.Logs(context.Background(), filter)
			if err != nil {
				return err
			}
			p.Total = result.Total

			if result.Total == 0 {
				fmt.Println("No logs yet.")
				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow("WHEN", "MODULE", "STATUS", "MESSAGE")
			for _, entry := range result.Logs {
				when := entry.CreatedAt
				tbl.AddRow(
					format.DateTime(&when),
					string(entry.Category),
					format.StatusBadge(entry.Status),
					format.Truncate(entry.Message, 50),
				)
			}
			printTable(tbl)
			fmt.Printf("\n%s (page %d/%d)\n", p.Summary(result.Count), p.Current, p.TotalPages())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&category, "category", "", "Filter by module (weather, finance, calendar, memo)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (success, fail, skip)")

	cmd.AddCommand(logsStatsCmd())
	return cmd
}

func logsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate log counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client.LogStats(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Total logs: %d\n", stats.TotalLogs)
			for _, status := range []models.RunStatus{models.RunStatusSuccess, models.RunStatusFail, models.RunStatusSkip} {
				fmt.Printf("  %-8s %d\n", status, stats.ByStatus[status])
			}
			return nil
		},
	}
}

// ============ JOBS ============

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := client.Jobs(context.Background())
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("No jobs scheduled.")
				return nil
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("ID", "NEXT RUN")
			for _, job := range jobs {
				tbl.AddRow(job.ID, format.DateTime(job.NextRunTime))
			}
			printTable(tbl)
			return nil
		},
	}

	cmd.AddCommand(jobsRegisterCmd())
	cmd.AddCommand(jobsDeleteCmd())
	cmd.AddCommand(jobsPauseCmd())
	cmd.AddCommand(jobsResumeCmd())
	return cmd
}

func jobsRegisterCmd() *cobra.Command {
	var hour, minute int

	cmd := &cobra.Command{
		Use:   "register <type>",
		Short: "Register a daily job (weather, finance/us, finance/kr, calendar)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.RegisterJob(context.Background(), args[0], hour, minute)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().IntVar(&hour, "hour", 9, "Hour (0-23)")
	cmd.Flags().IntVar(&minute, "minute", 0, "Minute (0-59)")
	return cmd
}

func jobsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scheduled job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(fmt.Sprintf("Delete job %s?", args[0])) {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := client.DeleteJob(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Job deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func jobsPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <id>",
		Short: "Pause a job without removing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.PauseJob(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func jobsResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.ResumeJob(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

// ============ TEST / PREVIEW ============

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <type>",
		Short: "Send a test notification (weather, finance, calendar)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.TestNotification(context.Background(), args[0])
			if err != nil {
				if api.IsAccountNotLinked(err) {
					return fmt.Errorf("account not linked: run `notidash link kakao` first")
				}
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <module> [variant]",
		Short: "Render a module's message without sending (finance takes us/kr)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := ""
			if len(args) == 2 {
				variant = args[1]
			}
			result, err := client.Preview(context.Background(), models.Category(args[0]), variant)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

// ============ REMINDERS ============

func remindersCmd() *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "One-off reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			var isSent *bool
			if pendingOnly {
				v := false
				isSent = &v
			}
			reminders, err := client.Reminders(context.Background(), isSent)
			if err != nil {
				return err
			}
			if len(reminders) == 0 {
				fmt.Println("No reminders.")
				return nil
			}

			now := time.Now()
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("ID", "WHEN", "MESSAGE", "STATE")
			for _, r := range reminders {
				when := r.TargetDatetime
				reminderState := "pending"
				if r.IsSent {
					reminderState = "sent"
				} else if r.Overdue(now) {
					reminderState = "overdue"
				}
				tbl.AddRow(
					strconv.FormatInt(r.ID, 10),
					format.DateTime(&when),
					format.Truncate(r.MessageContent, 50),
					reminderState,
				)
			}
			printTable(tbl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only unsent reminders")

	cmd.AddCommand(remindersAddCmd())
	cmd.AddCommand(remindersDeleteCmd())
	return cmd
}

func remindersAddCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "add <message>",
		Short: "Schedule a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default: tomorrow at the configured reminder time.
			if at == "" {
				at = fmt.Sprintf("%s %s",
					time.Now().AddDate(0, 0, 1).Format("2006-01-02"), cfg.Reminders.DefaultTime)
			}
			when, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --at %q: use \"YYYY-MM-DD HH:MM\"", at)
			}

			reminder, err := client.CreateReminder(context.Background(), models.ReminderCreate{
				MessageContent: args[0],
				TargetDatetime: when,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Reminder %d scheduled for %s\n", reminder.ID, format.DateTime(&reminder.TargetDatetime))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When to send (\"YYYY-MM-DD HH:MM\", default tomorrow morning)")
	return cmd
}

func remindersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid reminder id %q", args[0])
			}
			if !yes && !confirm("Delete this reminder?") {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := client.DeleteReminder(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("Reminder deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

// ============ FINANCE ============

func marketFlag(cmd *cobra.Command, market *string) {
	cmd.Flags().StringVar(market, "market", "US", "Market (US or KR)")
}

func watchlistCmd() *cobra.Command {
	var market string

	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Finance watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := client.Watchlist(context.Background(), models.Market(strings.ToUpper(market)))
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("Watchlist is empty.")
				return nil
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("ID", "TICKER", "NAME", "MARKET")
			for _, item := range items {
				name := item.Name
				if name == "" {
					name = format.Placeholder
				}
				tbl.AddRow(strconv.FormatInt(item.ID, 10), item.Ticker, name, string(item.Market))
			}
			printTable(tbl)
			return nil
		},
	}
	marketFlag(cmd, &market)

	cmd.AddCommand(watchlistAddCmd())
	cmd.AddCommand(watchlistDeleteCmd())
	cmd.AddCommand(watchlistReorderCmd())
	return cmd
}

func watchlistAddCmd() *cobra.Command {
	var market string

	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Add a ticker to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := client.AddWatchlistItem(context.Background(), args[0], models.Market(strings.ToUpper(market)))
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", item.Ticker, item.Market)
			return nil
		},
	}
	marketFlag(cmd, &market)
	return cmd
}

func watchlistDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a watchlist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid watchlist id %q", args[0])
			}
			if !yes && !confirm("Remove this ticker?") {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := client.DeleteWatchlistItem(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("Removed.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func watchlistReorderCmd() *cobra.Command {
	var market string

	cmd := &cobra.Command{
		Use:   "reorder <id> [id...]",
		Short: "Persist a new display order (ids in the desired order)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid watchlist id %q", arg)
				}
				ids = append(ids, id)
			}
			if err := client.ReorderWatchlist(context.Background(), models.Market(strings.ToUpper(market)), ids); err != nil {
				return err
			}
			fmt.Println("Order saved.")
			return nil
		},
	}
	marketFlag(cmd, &market)
	return cmd
}

func alertsCmd() *cobra.Command {
	var watchlistID int64

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Price alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts, err := client.Alerts(context.Background(), watchlistID)
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				fmt.Println("No alerts.")
				return nil
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("ID", "TICKER", "TYPE", "TARGET", "TRIGGERED")
			for _, alert := range alerts {
				target := format.Placeholder
				if alert.TargetPrice != nil {
					target = fmt.Sprintf("%.2f", *alert.TargetPrice)
				} else if alert.TargetPercent != nil {
					target = format.Percent(*alert.TargetPercent)
				}
				triggered := ""
				if alert.IsTriggered {
					triggered = format.DateTime(alert.TriggeredAt)
				}
				tbl.AddRow(strconv.FormatInt(alert.ID, 10), alert.Ticker, string(alert.AlertType), target, triggered)
			}
			printTable(tbl)
			return nil
		},
	}

	cmd.Flags().Int64Var(&watchlistID, "watchlist", 0, "Filter by watchlist item id")

	cmd.AddCommand(alertsAddCmd())
	cmd.AddCommand(alertsDeleteCmd())
	return cmd
}

func alertsAddCmd() *cobra.Command {
	var watchlistID int64
	var alertType string
	var value float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a price alert",
		RunE: func(cmd *cobra.Command, args []string) error {
			alert, err := client.CreateAlert(context.Background(), watchlistID,
				models.AlertType(strings.ToUpper(alertType)), value)
			if err != nil {
				return err
			}
			fmt.Printf("Alert %d created.\n", alert.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&watchlistID, "watchlist", 0, "Watchlist item id (required)")
	cmd.Flags().StringVar(&alertType, "type", "", "TARGET_HIGH, TARGET_LOW or PERCENT_CHANGE")
	cmd.Flags().Float64Var(&value, "value", 0, "Target price, or percent for PERCENT_CHANGE")
	_ = cmd.MarkFlagRequired("watchlist")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func alertsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a price alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert id %q", args[0])
			}
			if !yes && !confirm("Delete this alert?") {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := client.DeleteAlert(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("Alert deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func quoteCmd() *cobra.Command {
	var market string

	cmd := &cobra.Command{
		Use:   "quote <ticker>",
		Short: "Show the quote detail for one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := client.Quote(context.Background(), args[0], models.Market(strings.ToUpper(market)))
			if err != nil {
				return err
			}

			title := quote.Ticker
			if quote.Name != "" {
				title += " - " + quote.Name
			}
			fmt.Println(title)
			fmt.Printf("%s  %s\n", format.Money(quote.Market, quote.Price), format.ChangeBadge(quote.ChangePercent))
			for _, period := range quote.Periods {
				fmt.Printf("  %-4s %s\n", period.Label, format.Percent(period.Percent))
			}
			if quote.Week52Low != nil && quote.Week52High != nil {
				fmt.Printf("  52w  %s %s %s\n",
					format.Money(quote.Market, *quote.Week52Low),
					format.RangeGauge(*quote.Week52Low, *quote.Week52High, quote.Price, 20),
					format.Money(quote.Market, *quote.Week52High))
			}
			return nil
		},
	}
	marketFlag(cmd, &market)
	return cmd
}

// ============ CALENDAR ============

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Google calendar selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			calendars, err := client.Calendars(ctx)
			if err != nil {
				if api.IsAccountNotLinked(err) {
					return fmt.Errorf("google account not linked: run `notidash link google` first")
				}
				return err
			}

			if selected, err := client.SelectedCalendar(ctx); err == nil {
				fmt.Printf("Selected: %s\n\n", selected.Summary)
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("", "ID", "NAME")
			for _, cal := range calendars {
				marker := ""
				if cal.Selected {
					marker = "*"
				}
				name := cal.Summary
				if cal.Primary {
					name += " (primary)"
				}
				tbl.AddRow(marker, cal.ID, name)
			}
			printTable(tbl)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "select <calendar-id>",
		Short: "Pick which calendar notifications read from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.SelectCalendar(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Calendar selected.")
			return nil
		},
	})
	return cmd
}

// ============ ACCOUNT LINKING ============

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <provider>",
		Short: "Connect a provider account (kakao, google, telegram)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := models.Provider(args[0])
			ctx := context.Background()

			if provider == models.ProviderTelegram {
				return linkTelegram(ctx)
			}

			flow := linkflow.New(client, store, cfg.Link.CallbackPort, log)
			outcome, err := flow.Run(ctx, provider)
			if err != nil {
				return err
			}
			if !outcome.Success {
				return fmt.Errorf("connect failed: %s", outcome.Message)
			}
			fmt.Println(outcome.Message)
			return nil
		},
	}

	cmd.AddCommand(linkStatusCmd())
	cmd.AddCommand(linkDisconnectCmd())
	cmd.AddCommand(linkTestCmd())
	cmd.AddCommand(linkRefreshCmd())
	return cmd
}

// linkTelegram runs the guided flow: message the bot, then paste the
// chat id it replies with.
func linkTelegram(ctx context.Context) error {
	info, err := client.TelegramBotInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("1. Open %s and send the bot any message.\n", info.DeepLink)
	fmt.Println("2. Paste the chat id the bot replies with:")
	fmt.Print("> ")

	var chatID string
	if _, err := fmt.Scanln(&chatID); err != nil {
		return fmt.Errorf("no chat id entered")
	}
	result, err := client.VerifyTelegram(ctx, strings.TrimSpace(chatID))
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func linkStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [provider]",
		Short: "Show provider link status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				provider := models.Provider(args[0])
				status, err := client.ProviderStatus(ctx, provider)
				if err != nil {
					return err
				}
				fmt.Printf("%-10s %s\n", provider, format.ConnectedBadge(status.Connected))
				if status.Detail != "" {
					fmt.Println(status.Detail)
				}
				return nil
			}

			auth, err := client.AuthStatus(ctx)
			if err != nil {
				return err
			}
			for _, provider := range models.Providers() {
				fmt.Printf("%-10s %s\n", provider, format.ConnectedBadge(auth.Connected(provider)))
			}
			return nil
		},
	}
}

func linkDisconnectCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "disconnect <provider>",
		Short: "Unlink a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(fmt.Sprintf("Disconnect %s?", args[0])) {
				fmt.Println("Cancelled.")
				return nil
			}
			result, err := client.Disconnect(context.Background(), models.Provider(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func linkTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <provider>",
		Short: "Send a test message through a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.TestProvider(context.Background(), models.Provider(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func linkRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a Kakao token refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.RefreshKakaoToken(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
