package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hyperifyio/profilescout/internal/fetch"
	"github.com/hyperifyio/profilescout/internal/search"
)

func main() {
	q := `site:linkedin.com/in "Data Scientist"`
	if len(os.Args) > 1 {
		q = os.Args[1]
	}
	prov := &search.DuckDuckGo{
		Fetcher:  &fetch.Client{MaxAttempts: 3, PerRequestTimeout: 10 * time.Second},
		DumpPath: os.Getenv("DUMP_HTML"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	res, err := prov.Search(ctx, q, 10)
	fmt.Println("err:", err)
	for i, r := range res {
		fmt.Printf("%d. %s — %s\n", i+1, r.Title, r.URL)
	}
}
