package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"golang.org/x/term"

	"github.com/iudanet/chatstore/internal/models"
	"github.com/iudanet/chatstore/internal/service"
	"github.com/iudanet/chatstore/internal/storage/sqlite"
)

func runCreateUser(ctx context.Context, chat *service.Chat, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chatstore create-user <login> [name]")
	}

	login := args[0]
	name := login
	if len(args) > 1 {
		name = args[1]
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := chat.Register(ctx, login, name, password, models.RoleUser)
	if err != nil {
		return err
	}

	fmt.Printf("User %q created\n", user.Login)

	return nil
}

func runCreateRoom(ctx context.Context, chat *service.Chat, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chatstore create-room <room>")
	}

	if err := chat.OpenRoom(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Room %q created\n", args[0])

	return nil
}

func runJoin(ctx context.Context, chat *service.Chat, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: chatstore join <login> <room>")
	}

	if err := chat.JoinRoom(ctx, args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("User %q joined room %q\n", args[0], args[1])

	return nil
}

func runUsers(ctx context.Context, store *sqlite.Storage, args []string) error {
	var (
		users []*models.User
		err   error
	)

	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	switch filter {
	case "-all":
		users, err = store.GetAllUsers(ctx)
	case "-deleted":
		users, err = store.GetDeletedUsers(ctx)
	case "":
		users, err = store.GetActiveUsers(ctx)
	default:
		return fmt.Errorf("unknown filter %q, want -all or -deleted", filter)
	}
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users")
		return nil
	}

	for _, u := range users {
		state := "active"
		if u.IsDeleted {
			state = "deleted"
		}
		fmt.Printf("%-32s %-24s %-8s %s\n", u.Login, u.Name, u.Role, state)
	}

	return nil
}

func runRooms(ctx context.Context, store *sqlite.Storage) error {
	rooms, err := store.GetRooms(ctx)
	if err != nil {
		return err
	}

	if len(rooms) == 0 {
		fmt.Println("No rooms")
		return nil
	}

	for _, room := range rooms {
		fmt.Println(room)
	}

	return nil
}

func runMembers(ctx context.Context, store *sqlite.Storage, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chatstore members <room>")
	}

	users, err := store.GetRoomActiveUsers(ctx, args[0])
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No active members")
		return nil
	}

	for _, u := range users {
		fmt.Printf("%-32s %s\n", u.Login, u.Name)
	}

	return nil
}

func runStats(ctx context.Context, store *sqlite.Storage) error {
	rooms, err := store.GetRooms(ctx)
	if err != nil {
		return err
	}

	members, err := store.GetRoomsWithMembers(ctx)
	if err != nil {
		return err
	}

	// Стабильный вывод для скриптов
	sort.Strings(rooms)

	for _, room := range rooms {
		count, err := store.CountRoomMessages(ctx, room)
		if err != nil {
			return err
		}
		fmt.Printf("%-32s %6d messages %4d members\n", room, count, len(members[room]))
	}

	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	pwBytes, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
