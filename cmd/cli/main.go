package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"booklibrary-backend/internal/config"
	"booklibrary-backend/internal/domains/book/model"
	"booklibrary-backend/internal/domains/catalog"
	"booklibrary-backend/internal/library"
)

const defaultBaseURL = "http://localhost:3001/api/v1"

func main() {
	global := flag.NewFlagSet("booklib", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	storePath := global.String("store", library.DefaultStorePath(), "local library file")
	if err := global.Parse(os.Args[1:]); err != nil {
		fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	lib := library.New(
		library.NewFileStore(*storePath),
		library.NewAPIClient(*baseURL),
	)

	switch args[0] {
	case "list":
		handleList(ctx, lib, args[1:])
	case "search":
		handleSearch(ctx, args[1:])
	case "add":
		handleAdd(ctx, lib, args[1:])
	case "create":
		handleCreate(ctx, lib, args[1:])
	case "update":
		handleUpdate(ctx, lib, args[1:])
	case "remove":
		handleRemove(ctx, lib, args[1:])
	case "stats":
		handleStats(ctx, lib)
	case "export":
		handleExport(ctx, lib, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleList(ctx context.Context, lib *library.Library, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	fs.Parse(args)

	snapshot := lib.GetAll(ctx)
	if snapshot.Degraded {
		fmt.Fprintln(os.Stderr, "warning: server unreachable, custom books not shown")
	}

	entries := snapshot.Entries
	if *status != "" {
		entries = snapshot.ByStatus(*status)
	}
	if len(entries) == 0 {
		fmt.Println("Library is empty.")
		return
	}
	for _, e := range entries {
		printEntry(e)
	}
}

func handleSearch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	limit := fs.Int("limit", 10, "max results")
	fs.Parse(args)
	query := strings.Join(fs.Args(), " ")
	if query == "" {
		fatalf("usage: booklib search [-limit n] <query>")
	}

	result, err := searchCatalog(ctx, query, *limit)
	if err != nil {
		fatalf("search: %v", err)
	}

	fmt.Printf("Found %d books (showing %d):\n", result.TotalFound, len(result.Books))
	for i, b := range result.Books {
		year := "-"
		if b.PublishYear != nil {
			year = fmt.Sprintf("%d", *b.PublishYear)
		}
		fmt.Printf("%2d. %s — %s (%s)\n    %s\n", i+1, b.Title, strings.Join(b.Authors, ", "), year, b.ID)
	}
}

func handleAdd(ctx context.Context, lib *library.Library, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	status := fs.String("status", "", "reading status")
	pick := fs.Int("pick", 1, "which search result to add (1-based)")
	fs.Parse(args)
	query := strings.Join(fs.Args(), " ")
	if query == "" {
		fatalf("usage: booklib add [-status s] [-pick n] <query>")
	}

	result, err := searchCatalog(ctx, query, *pick)
	if err != nil {
		fatalf("search: %v", err)
	}
	if len(result.Books) < *pick || *pick < 1 {
		fatalf("no result #%d for %q", *pick, query)
	}
	book := result.Books[*pick-1]

	res, err := lib.AddExternal(book, *status)
	if err != nil {
		fatalf("add: %v", err)
	}
	if !res.Success {
		fmt.Println(res.Message)
		return
	}
	fmt.Printf("Added %q (%s)\n", book.Title, book.ID)
}

func handleCreate(ctx context.Context, lib *library.Library, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "book title (required)")
	authors := fs.String("authors", "", "comma-separated authors")
	year := fs.Int("year", 0, "publish year")
	genre := fs.String("genre", "", "genre")
	description := fs.String("description", "", "description")
	status := fs.String("status", "", "reading status")
	fs.Parse(args)

	req := model.CreateBookRequest{
		Title:       *title,
		Authors:     splitAuthors(*authors),
		Genre:       optString(*genre),
		Description: optString(*description),
		Status:      *status,
	}
	if *year > 0 {
		req.PublishYear = year
	}

	entry, err := lib.CreateCustom(ctx, req)
	if err != nil {
		fatalf("create: %v", err)
	}
	fmt.Printf("Created %q (%s)\n", entry.Title, entry.ID)
}

func handleUpdate(ctx context.Context, lib *library.Library, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	authors := fs.String("authors", "", "comma-separated authors")
	year := fs.Int("year", 0, "publish year")
	status := fs.String("status", "", "reading status")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fatalf("usage: booklib update [flags] <id>")
	}

	entry, err := lib.Get(ctx, fs.Arg(0))
	if err != nil {
		fatalf("update: %v", err)
	}

	var req model.UpdateBookRequest
	if *title != "" {
		req.Title = model.Optional[string]{Set: true, Value: *title}
	}
	if *authors != "" {
		req.Authors = model.Optional[model.AuthorList]{Set: true, Value: splitAuthors(*authors)}
	}
	if *year > 0 {
		req.PublishYear = model.Optional[int]{Set: true, Value: *year}
	}
	if *status != "" {
		req.Status = model.Optional[string]{Set: true, Value: *status}
	}

	updated, err := lib.Update(ctx, *entry, req)
	if err != nil {
		fatalf("update: %v", err)
	}
	fmt.Printf("Updated %q\n", updated.Title)
	printEntry(*updated)
}

func handleRemove(ctx context.Context, lib *library.Library, args []string) {
	if len(args) != 1 {
		fatalf("usage: booklib remove <id>")
	}

	entry, err := lib.Get(ctx, args[0])
	if err != nil {
		fatalf("remove: %v", err)
	}
	removed, err := lib.Remove(ctx, *entry)
	if err != nil {
		fatalf("remove: %v", err)
	}
	fmt.Printf("Removed %q (%s)\n", removed.Title, removed.ID)
}

func handleStats(ctx context.Context, lib *library.Library) {
	snapshot := lib.GetAll(ctx)
	if snapshot.Degraded {
		fmt.Fprintln(os.Stderr, "warning: server unreachable, custom books not counted")
	}
	stats := snapshot.Stats()
	fmt.Printf("Total:             %d\n", stats.Total)
	fmt.Printf("Want to read:      %d\n", stats.WantToRead)
	fmt.Printf("Currently reading: %d\n", stats.CurrentlyReading)
	fmt.Printf("Read:              %d\n", stats.Read)
	fmt.Printf("Custom:            %d\n", stats.Custom)
}

func handleExport(ctx context.Context, lib *library.Library, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "library.xlsx", "output file")
	fs.Parse(args)

	snapshot := lib.GetAll(ctx)
	if snapshot.Degraded {
		fmt.Fprintln(os.Stderr, "warning: server unreachable, custom books not exported")
	}
	if err := library.ExportXLSX(snapshot, *out); err != nil {
		fatalf("export: %v", err)
	}
	fmt.Printf("Exported %d books to %s\n", len(snapshot.Entries), *out)
}

// searchCatalog talks to Open Library directly, so search works even
// when the API server is down.
func searchCatalog(ctx context.Context, query string, limit int) (*catalog.SearchResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client := catalog.NewClient(cfg.OpenLibrary)

	if limit < catalog.DefaultLimit {
		limit = catalog.DefaultLimit
	}
	searchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return client.Search(searchCtx, catalog.SearchParams{Query: query, Limit: limit})
}

func printEntry(e library.Entry) {
	year := ""
	if e.PublishYear != nil {
		year = fmt.Sprintf(" (%d)", *e.PublishYear)
	}
	tag := ""
	if e.Origin == library.OriginServer {
		tag = " [custom]"
	}
	fmt.Printf("- %s — %s%s [%s]%s\n  %s\n", e.Title, strings.Join(e.Authors, ", "), year, e.Status, tag, e.ID)
}

func splitAuthors(s string) model.AuthorList {
	if s == "" {
		return nil
	}
	var authors model.AuthorList
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `booklib - personal book library

Usage:
  booklib [-api url] [-store path] <command> [flags]

Commands:
  list      show all books (-status filters)
  search    search Open Library
  add       search and track an Open Library book locally
  create    create a custom book on the server
  update    change a tracked book (title, authors, year, status)
  remove    remove a book from the library
  stats     library counts by status
  export    write the library to an .xlsx file`)
}
