package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a pseudo, email and password and creates an account.
// A successful registration also logs the user in: the client keeps the
// returned session token.
func (a *App) Register(ctx context.Context) error {
	pseudo, err := getSimpleText(a.reader, "Choose a pseudo", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.client.Register(ctx, pseudo, email, string(password))
	if err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	a.userName = user.Pseudo
	fmt.Printf("Welcome, %s!\n", user.Pseudo)
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	a.userName = user.Pseudo
	fmt.Printf("Logged in as %s\n", user.Pseudo)
	return nil
}

// Whoami fetches and prints the authenticated profile.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.client.Profile(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("id: %d\npseudo: %s\nemail: %s\n", user.ID, user.Pseudo, user.Email)
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}
