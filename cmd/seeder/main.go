package main

import (
	"log"

	"supchaissac_backend/internals/configs"
	"supchaissac_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	db := configs.InitSeederDB()
	seeds.RunAllSeeds(db)
	log.Println("✅ Seeding done")
}
