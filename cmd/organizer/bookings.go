package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var bookingsFlags struct {
	page  int
	limit int
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings against your events",
	RunE:  runBookings,
}

var bookingsUpdateStatusCmd = &cobra.Command{
	Use:   "update-status <booking-id> <status>",
	Short: "Change the status of a booking",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookingsUpdateStatus,
}

func init() {
	bookingsCmd.Flags().IntVarP(&bookingsFlags.page, "page", "p", 1, "Page number")
	bookingsCmd.Flags().IntVarP(&bookingsFlags.limit, "limit", "l", 25, "Bookings per page")
	bookingsCmd.AddCommand(bookingsUpdateStatusCmd)
}

func runBookings(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	page, err := client.Bookings(cmd.Context(), bookingsFlags.page, bookingsFlags.limit)
	if err != nil {
		return err
	}
	if len(page.Bookings) == 0 {
		fmt.Println("No bookings on this page.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tCUSTOMER\tTICKETS\tTOTAL\tSTATUS")
	for _, b := range page.Bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t$%.2f\t%s\n", b.ID, b.EventTitle, b.Customer, b.Tickets, b.Total, b.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nPage %d (%d total bookings)\n", page.Page, page.Total)
	return nil
}

func runBookingsUpdateStatus(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}
	if err := client.UpdateBookingStatus(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Booking %s is now %s\n", args[0], args[1])
	return nil
}
