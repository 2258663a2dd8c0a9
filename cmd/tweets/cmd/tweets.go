package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tweetboard/internal/form"
	"tweetboard/internal/model"
)

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tweets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, err := o.client().ListTweets(cmd.Context())
			if err != nil {
				return err
			}
			return printTweets(cmd.OutOrStdout(), o.format, tweets)
		},
	}
}

func newGetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tweet, err := o.client().GetTweet(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printTweet(cmd.OutOrStdout(), o.format, tweet)
		},
	}
}

func newPostCmd(o *options) *cobra.Command {
	var f form.Form

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a new tweet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return err
			}
			tweet, err := o.client().CreateTweet(cmd.Context(), f.Request())
			if err != nil {
				return err
			}
			return printTweet(cmd.OutOrStdout(), o.format, tweet)
		},
	}
	addFormFlags(cmd, &f)
	return cmd
}

func newUpdateCmd(o *options) *cobra.Command {
	var f form.Form

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a tweet's author and message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}
			tweet, err := o.client().UpdateTweet(cmd.Context(), id, f.Request())
			if err != nil {
				return err
			}
			return printTweet(cmd.OutOrStdout(), o.format, tweet)
		},
	}
	addFormFlags(cmd, &f)
	return cmd
}

func newDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := o.client().DeleteTweet(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tweet %d\n", id)
			return nil
		},
	}
}

func newAuthorCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "author NAME",
		Short: "List tweets by author (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, err := o.client().TweetsByAuthor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printTweets(cmd.OutOrStdout(), o.format, tweets)
		},
	}
}

func newSearchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search TEXT",
		Short: "List tweets whose message contains TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, err := o.client().SearchTweets(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printTweets(cmd.OutOrStdout(), o.format, tweets)
		},
	}
}

func addFormFlags(cmd *cobra.Command, f *form.Form) {
	cmd.Flags().StringVarP(&f.Author, "author", "a", "", fmt.Sprintf("Author name (max %d characters)", model.MaxAuthorLength))
	cmd.Flags().StringVarP(&f.Message, "message", "m", "", fmt.Sprintf("Message (max %d characters)", model.MaxMessageLength))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid tweet id %q", s)
	}
	return id, nil
}
