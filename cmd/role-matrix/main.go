package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/database"
	"github.com/stemsi/sekolah-backend/internal/logger"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

func main() {
	var (
		audit bool
		role  string
	)
	flag.BoolVar(&audit, "audit", false, "Also count accounts per role in the database")
	flag.StringVar(&role, "role", "", "Print only the permissions of this role")
	flag.Parse()

	resolver := rbac.Default()

	if role != "" {
		printRole(os.Stdout, resolver, role)
	} else {
		printMatrix(os.Stdout, resolver)
	}

	if !audit {
		return
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	counts, err := repository.NewUserRepository(pool).CountByRole(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count accounts")
	}
	printAudit(os.Stdout, resolver, counts)
}

// printMatrix writes one row per catalog permission and one column per role.
func printMatrix(w io.Writer, resolver *rbac.Resolver) {
	roles := model.AllRoles()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"PERMISSION"}
	for _, r := range roles {
		header = append(header, string(r))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sets := make([]rbac.PermissionSet, len(roles))
	for i, r := range roles {
		sets[i] = resolver.Resolve(r)
	}

	var area model.PermissionArea
	for _, info := range model.PermissionCatalog() {
		if info.Area != area {
			area = info.Area
			fmt.Fprintf(tw, "[%s]\n", area)
		}
		row := []string{"  " + string(info.Permission)}
		for _, set := range sets {
			mark := "."
			if set.Has(info.Permission) {
				mark = "x"
			}
			row = append(row, mark)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	totals := []string{"TOTAL"}
	for _, set := range sets {
		totals = append(totals, fmt.Sprint(set.Len()))
	}
	fmt.Fprintln(tw, strings.Join(totals, "\t"))
	_ = tw.Flush()
}

func printRole(w io.Writer, resolver *rbac.Resolver, raw string) {
	role := model.ParseRole(raw)
	if string(role) != raw {
		fmt.Fprintf(w, "%q is not a known role, showing %s\n", raw, role)
	}
	set := resolver.Resolve(role)
	fmt.Fprintf(w, "%s (%d permissions)\n", role, set.Len())
	for _, p := range set.List() {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

// printAudit reports how many accounts hold each role. Stored roles outside
// the known set are flagged; they authenticate with the guest permissions.
func printAudit(w io.Writer, resolver *rbac.Resolver, counts map[string]int) {
	stored := make([]string, 0, len(counts))
	for r := range counts {
		stored = append(stored, r)
	}
	sort.Strings(stored)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w)
	fmt.Fprintln(tw, "ROLE\tACCOUNTS\tPERMISSIONS\tNOTE")
	for _, raw := range stored {
		role := model.Role(raw)
		note := ""
		if !role.IsKnown() {
			note = fmt.Sprintf("unknown, resolves to %s", model.RoleUser)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", raw, counts[raw], resolver.ResolveString(raw).Len(), note)
	}
	_ = tw.Flush()
}
