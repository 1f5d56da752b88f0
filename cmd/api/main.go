// Standalone analysis JSON service. Runs the same engine the main binary
// embeds, behind the /process + /progress wire contract, so the web app can
// point ANALYZER_URL at it.
package main

import (
	"flag"
	"log"
	"os"

	"gorelate/internal/analysis"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	addr := flag.String("addr", "", "listen address (default :8091 or ANALYSIS_PORT)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	listen := *addr
	if listen == "" {
		port := os.Getenv("ANALYSIS_PORT")
		if port == "" {
			port = "8091"
		}
		listen = ":" + port
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	server := analysis.NewServer(analysis.NewEngine())
	log.Fatal(server.Run(listen))
}
