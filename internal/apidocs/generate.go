package apidocs

//go:generate go run github.com/swaggo/swag/cmd/swag init --dir ../../ --generalInfo cmd/app/main.go --output . --outputTypes go --packageName apidocs --parseInternal
