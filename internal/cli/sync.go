// ABOUTME: Sync subcommand for Charm cloud backup
// ABOUTME: Provides status, link, push, and pull commands (SSH key auth)
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/proto"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/tally/internal/charm"
)

var pullSkip bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Back up the grid to the cloud using Charm",
	Long: `Back up your grid securely to the cloud using Charm.

Authentication is automatic via SSH keys - no login required!

Commands:
  status  - Show sync status and Charm user ID
  link    - Link this device to another Charm account
  push    - Upload the local grid
  pull    - Replace the local grid with the uploaded one

Set auto_sync = true in config.toml to push after every change.`,
}

func charmClient(s *session) (*charm.Client, error) {
	return charm.NewClient(charm.Config{Host: s.cfg.CharmHost, AutoSync: s.cfg.AutoSync})
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		c, err := charmClient(s)
		if err != nil {
			return err
		}

		id, err := c.ID()
		if err != nil {
			fmt.Fprintf(w, "Charm:     not connected (%v)\n", err)
			fmt.Fprintln(w, "\nRun 'tally sync link' to connect to a Charm account.")
			return nil
		}

		fmt.Fprintf(w, "Charm ID:  %s\n", id)
		fmt.Fprintf(w, "Server:    %s\n", charm.Host())
		fmt.Fprintf(w, "Data file: %s\n", s.ws.DataFile)

		if meta, err := c.LastPush(); err != nil {
			fmt.Fprintf(w, "Last push: unknown (%v)\n", err)
		} else if meta == nil {
			fmt.Fprintln(w, "Last push: never")
		} else {
			fmt.Fprintf(w, "Last push: %s from %s (%d classes, %d rows)\n",
				meta.PushedAt.Local().Format(time.DateTime), meta.Hostname, meta.Classes, meta.Rows)
		}

		if s.cfg.AutoSync {
			color.New(color.FgGreen).Fprintln(w, "Auto-sync: on")
		} else {
			color.New(color.FgYellow).Fprintln(w, "Auto-sync: off")
		}
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		meta, err := s.push()
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		success(cmd, "Pushed %d classes, %d rows", meta.Classes, meta.Rows)
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the local grid with the uploaded one",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		c, err := charmClient(s)
		if err != nil {
			return err
		}

		remote, err := c.PullGrid()
		if err != nil {
			if errors.Is(err, charm.ErrNotFound) {
				return fmt.Errorf("nothing has been pushed yet")
			}
			return fmt.Errorf("pull failed: %w", err)
		}

		prompt := fmt.Sprintf("This will replace %s (%d classes) with the cloud copy (%d classes, %d rows).",
			s.ws.DataFile, len(s.data.Classes), len(remote.Classes), remote.Rows())
		if !confirm(cmd, prompt, "pull", pullSkip) {
			return nil
		}

		s.data = remote
		if err := s.store.Save(s.data); err != nil {
			return fmt.Errorf("failed to save grid: %w", err)
		}

		success(cmd, "Pulled grid from cloud")
		return s.print(cmd)
	},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to a Charm account",
	Long: `Link this device to an existing Charm account.

This will generate a link code that you can enter on another device
that's already linked to your Charm account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := client.NewClientWithDefaults()
		if err != nil {
			return fmt.Errorf("failed to create Charm client: %w", err)
		}

		if _, err := cc.ID(); err == nil {
			color.Green("Already linked to a Charm account!")
			fmt.Println("Run 'tally sync status' to see your account info.")
			return nil
		}

		fmt.Println("Generating link request...")
		fmt.Println("Enter this code on a device that's already linked to your Charm account.")

		if err := cc.LinkGen(&linkHandler{}); err != nil {
			return fmt.Errorf("link failed: %w", err)
		}
		return nil
	},
}

func init() {
	syncPullCmd.Flags().BoolVarP(&pullSkip, "yes", "y", false, "Skip confirmation")

	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)

	rootCmd.AddCommand(syncCmd)
}

// linkHandler implements proto.LinkHandler for the link flow.
type linkHandler struct{}

func (lh *linkHandler) TokenCreated(l *proto.Link) {
	fmt.Printf("\nLink code: %s\n\n", l.Token)
	fmt.Println("Waiting for approval...")
}

func (lh *linkHandler) TokenSent(l *proto.Link) {}

func (lh *linkHandler) ValidToken(l *proto.Link) {}

func (lh *linkHandler) InvalidToken(l *proto.Link) {
	fmt.Println("Invalid or expired token. Please try again.")
}

func (lh *linkHandler) Request(l *proto.Link) bool {
	fmt.Printf("\nLink request from: %s\n", l.RequestAddr)
	fmt.Print("Approve? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}

func (lh *linkHandler) RequestDenied(l *proto.Link) {
	fmt.Println("Link request denied.")
}

func (lh *linkHandler) SameUser(l *proto.Link) {
	color.Green("\nSuccessfully linked!")
}

func (lh *linkHandler) Success(l *proto.Link) {
	color.Green("\nSuccessfully linked!")
}

func (lh *linkHandler) Timeout(l *proto.Link) {
	fmt.Println("\nLink request timed out. Please try again.")
}

func (lh *linkHandler) Error(l *proto.Link) {
	fmt.Println("\nError during linking")
}
