package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/itskontak/kontak/core"
	"github.com/itskontak/kontak/core/log"
	_ "github.com/lib/pq"
)

func main() {
	// A missing .env is fine; env vars may be set by the environment.
	_ = godotenv.Load()
	log.SetDebug(os.Getenv("KONTAK_ENV") != "production")
	app := cli.NewApp()
	app.Name = "kontak"
	app.Usage = "contact directory service"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "run the contact directory server",
			Action: func(c *cli.Context) error {
				if err := startServer(); err != nil {
					log.Fatalf("could not start server\n%s", err)
				}
				return nil
			},
		},
		{
			Name:    "console",
			Aliases: []string{"c"},
			Usage:   "manage contacts on a running kontak server",
			Action: func(c *cli.Context) error {
				if err := startConsole(c); err != nil {
					log.Fatalf("could not start console\n%s", err)
				}
				return nil
			},
		},
	}
	app.Action = func(c *cli.Context) error {
		cli.ShowAppHelp(c)
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// startServer connects to the database, sets up routes and listens for
// requests.
func startServer() error {
	router, err := core.NewServer()
	if err != nil {
		return err
	}
	log.Info("listening on port", os.Getenv("PORT"))
	return http.ListenAndServe(":"+os.Getenv("PORT"), router)
}

// startConsole speaks the JSON API of a running kontak server from a stdin
// loop. Commands: list, get <name>, add <name> <email> <phone>,
// edit <id> <oldname> <name> <email> <phone>, del <name>.
func startConsole(c *cli.Context) error {
	args := c.Args()
	addr := "localhost:" + os.Getenv("PORT")
	if len(args) == 1 {
		addr = args[0]
	} else if len(args) > 1 {
		return errors.New("usage: kontak console [server-address]")
	}
	// Capture ^C interrupt to add a newline
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		for range sig {
			fmt.Println("")
			os.Exit(0)
		}
	}()
	// The cookie jar holds the session cookie, so flash messages from
	// mutations show up on the next list.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	client := &http.Client{Jar: jar}
	base := "http://" + addr
	// Test connection
	resp, err := client.Get(base + "/api/contacts.json")
	if err != nil {
		return err
	}
	if err = resp.Body.Close(); err != nil {
		return err
	}
	fmt.Print("> ")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			fmt.Print("> ")
			continue
		}
		var req *http.Request
		switch words[0] {
		case "list":
			req, err = http.NewRequest("GET",
				base+"/api/contacts.json", nil)
		case "get":
			if len(words) != 2 {
				err = errors.New("usage: get <name>")
				break
			}
			req, err = http.NewRequest("GET", base+"/api/contacts/"+
				url.PathEscape(words[1])+".json", nil)
		case "add":
			if len(words) != 4 {
				err = errors.New("usage: add <name> <email> <phone>")
				break
			}
			form := url.Values{}
			form.Set("Name", words[1])
			form.Set("Email", words[2])
			form.Set("Phone", words[3])
			req, err = http.NewRequest("POST",
				base+"/api/contacts.json",
				strings.NewReader(form.Encode()))
		case "edit":
			if len(words) != 6 {
				err = errors.New("usage: edit <id> <oldname> <name> <email> <phone>")
				break
			}
			form := url.Values{}
			form.Set("ID", words[1])
			form.Set("OldName", words[2])
			form.Set("Name", words[3])
			form.Set("Email", words[4])
			form.Set("Phone", words[5])
			req, err = http.NewRequest("PUT",
				base+"/api/contacts.json",
				strings.NewReader(form.Encode()))
		case "del":
			if len(words) != 2 {
				err = errors.New("usage: del <name>")
				break
			}
			form := url.Values{}
			form.Set("Name", words[1])
			req, err = http.NewRequest("DELETE",
				base+"/api/contacts.json",
				strings.NewReader(form.Encode()))
		default:
			err = errors.New("unknown command (list, get, add, edit, del)")
		}
		if err != nil {
			fmt.Println(err)
			fmt.Print("> ")
			continue
		}
		if req.Method != "GET" {
			req.Header.Set("Content-Type",
				"application/x-www-form-urlencoded")
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		body, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err = resp.Body.Close(); err != nil {
			return err
		}
		fmt.Println(string(body))
		fmt.Print("> ")
	}
	return scanner.Err()
}
