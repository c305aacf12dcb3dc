package main

// @title LINE Messaging Gateway APIs
// @version 1.0
// @description Push, narrowcast, audience and rich menu operations over the LINE Messaging API.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "golang-connect-line/docs"
	protocol "golang-connect-line/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
