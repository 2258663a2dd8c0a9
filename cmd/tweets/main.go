package main

import (
	"github.com/joho/godotenv"

	"tweetboard/cmd/tweets/cmd"
)

func main() {
	// .envファイルがあれば読み込み
	_ = godotenv.Load()

	cmd.Execute()
}
