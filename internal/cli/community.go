package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/finbrief/internal/store"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Manage stored community posts",
}

var communityImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import community posts from a YAML file",
	Long: `Import stores community posts used by the briefing. The file holds a
list of posts:

  - title: 환율 1400원 돌파?
    content: 오늘 달러 강세가 심상치 않네요...
    author: user1
    created_at: 2024-05-10T09:30:00+09:00

Posts without created_at are stamped with the import time. Importing the
same post twice updates it in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runCommunityImport,
}

func init() {
	rootCmd.AddCommand(communityCmd)
	communityCmd.AddCommand(communityImportCmd)
}

// readPosts parses a YAML list of posts
func readPosts(path string) ([]store.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}

	var posts []store.Post
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse posts: %w", err)
	}

	for i, p := range posts {
		if p.Title == "" {
			return nil, fmt.Errorf("post %d: title is required", i+1)
		}
	}
	return posts, nil
}

func runCommunityImport(cmd *cobra.Command, args []string) error {
	posts, err := readPosts(args[0])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	saved, err := st.SavePosts(posts)
	if err != nil {
		return fmt.Errorf("save posts: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Imported %d posts\n", saved)
	return nil
}
