package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/routes"
	"github.com/shashiranjanraj/aushadhi/pkg/app"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

func application() *app.Application {
	return app.New().
		Routes(routes.RegisterAPI).
		AutoMigrate(
			&models.User{},
			&models.Category{},
			&models.Product{},
			&models.ProductImage{},
			&models.Branch{},
			&models.Order{},
			&models.OrderItem{},
			&models.ContactMessage{},
		)
}

// aushadhi serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Serve(application())
	},
}

// aushadhi route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		r := router.New()
		routes.RegisterAPI(r)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
