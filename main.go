package main

import (
	"fmt"
	"log"

	"FIC_Backend/config"
	"FIC_Backend/db"
	"FIC_Backend/router"
	"FIC_Backend/session"
	"FIC_Backend/store"
)

func main() {
	config.Load()

	gdb, err := db.Connect()
	if err != nil {
		log.Fatalf("connect db failed: %v", err)
	}

	pending, err := store.NewPostgresStore(gdb, config.GetDSN())
	if err != nil {
		log.Fatalf("pending store listener failed: %v", err)
	}
	defer pending.Close()

	sessions := session.NewManager(pending)
	defer sessions.CloseAll()

	r := router.Setup(router.Deps{Store: pending, Sessions: sessions, DB: gdb})
	addr := fmt.Sprintf(":%s", config.C.AppPort)
	log.Printf("listening on %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
