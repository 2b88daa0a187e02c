package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/varoOP/seasonal/internal/app"
	"github.com/varoOP/seasonal/internal/domain"
	"github.com/varoOP/seasonal/internal/seasonal"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all images, highest priority first",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		images, err := application.Service().GetAllImages(cmd.Context())
		if err != nil {
			return err
		}
		if len(images) == 0 {
			fmt.Println("No images configured")
			return nil
		}

		now := application.Clock().Now()
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tWINDOW\tPRIORITY\tPOSITION\tENABLED\tNEXT\tIMAGE")
		for _, img := range images {
			next := "active now"
			if !img.Matches(int(now.Month()), now.Day()) {
				next = "starts " + humanize.RelTime(seasonal.NextStart(now, img), now, "ago", "from now")
			}
			fmt.Fprintf(tw, "%d\t%s → %s\t%d\t%s\t%t\t%s\t%s\n",
				img.ID, img.StartDate(), img.EndDate(), img.Priority, img.Position, img.Enabled, next, img.ImagePath)
		}
		return tw.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		img, err := application.Service().GetImage(cmd.Context(), id)
		if err != nil {
			return err
		}

		now := application.Clock().Now()
		fmt.Printf("ID:          %d\n", img.ID)
		fmt.Printf("Window:      %s → %s\n", img.StartDate(), img.EndDate())
		fmt.Printf("Image:       %s\n", img.ImagePath)
		fmt.Printf("Position:    %s\n", img.Position)
		fmt.Printf("Priority:    %d\n", img.Priority)
		fmt.Printf("Enabled:     %t\n", img.Enabled)
		fmt.Printf("Description: %s\n", img.Description)
		fmt.Printf("Next start:  %s (%s)\n", seasonal.NextStart(now, *img).Format("2006-01-02"), humanize.RelTime(seasonal.NextStart(now, *img), now, "ago", "from now"))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an image",
	Example: `  seasonal add --start 12-20 --end 12-26 --image christmas_hat.png --priority 1
  seasonal add --start 12-28 --end 01-03 --image fireworks.png --position center`,
	RunE: func(cmd *cobra.Command, args []string) error {
		img := domain.NewSeasonalImage()
		update, err := imageUpdateFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if update.StartMonth == nil || update.EndMonth == nil || update.ImagePath == nil {
			return fmt.Errorf("--start, --end and --image are required")
		}
		update.Apply(&img)

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		id, err := application.Service().AddImage(cmd.Context(), img)
		if err != nil {
			return err
		}
		fmt.Printf("Added image #%d\n", id)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of an image; only the flags given are updated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		update, err := imageUpdateFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if update.Empty() {
			return fmt.Errorf("nothing to update")
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		found, err := application.Service().UpdateImage(cmd.Context(), id, update)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("image #%d not found", id)
		}
		fmt.Printf("Updated image #%d\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		found, err := application.Service().DeleteImage(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("image #%d not found", id)
		}
		fmt.Printf("Deleted image #%d\n", id)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Enable a disabled image or disable an enabled one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		found, err := application.Service().ToggleEnabled(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("image #%d not found", id)
		}

		img, err := application.Service().GetImage(cmd.Context(), id)
		if err != nil {
			return err
		}
		state := "disabled"
		if img.Enabled {
			state = "enabled"
		}
		fmt.Printf("Image #%d is now %s\n", id, state)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func addImageFlags(fs *pflag.FlagSet) {
	fs.String("start", "", "first day of the window, MM-DD")
	fs.String("end", "", "last day of the window, MM-DD (may be before start to wrap the year)")
	fs.String("image", "", "image path relative to the image base URL")
	fs.String("position", "", "overlay position (top-left, top-center, top-right, center, bottom-left, bottom-center, bottom-right)")
	fs.Int("priority", 0, "higher wins when windows overlap")
	fs.String("description", "", "free-text description")
	fs.Bool("enabled", true, "whether the image takes part in resolution")
}

// imageUpdateFromFlags turns the flags the user actually set into an update
func imageUpdateFromFlags(fs *pflag.FlagSet) (domain.ImageUpdate, error) {
	var u domain.ImageUpdate

	for _, name := range []string{"start", "end"} {
		if !fs.Changed(name) {
			continue
		}
		v, _ := fs.GetString(name)
		month, day, err := domain.ParseDate(v)
		if err != nil {
			return u, fmt.Errorf("--%s: %w", name, err)
		}
		if name == "start" {
			u.StartMonth, u.StartDay = &month, &day
		} else {
			u.EndMonth, u.EndDay = &month, &day
		}
	}

	if fs.Changed("image") {
		v, _ := fs.GetString("image")
		u.ImagePath = &v
	}
	if fs.Changed("position") {
		v, _ := fs.GetString("position")
		p, err := domain.ParsePosition(v)
		if err != nil {
			return u, err
		}
		u.Position = &p
	}
	if fs.Changed("priority") {
		v, _ := fs.GetInt("priority")
		u.Priority = &v
	}
	if fs.Changed("description") {
		v, _ := fs.GetString("description")
		u.Description = &v
	}
	if fs.Changed("enabled") {
		v, _ := fs.GetBool("enabled")
		u.Enabled = &v
	}

	return u, nil
}

func init() {
	addImageFlags(addCmd.Flags())
	addImageFlags(updateCmd.Flags())

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(toggleCmd)
}
