package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Feed --dir ../domain/player --output domain/player --outpkg playermock --filename feed_mock.go
