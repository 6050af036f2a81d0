package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	grpcx "github.com/cwrk-planet/meeting-service/internal/transport/grpc"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var errUsage = errors.New("bad arguments, see -h")

type cli struct {
	client *grpcx.Client
	out    io.Writer
	user   string
	strict bool
}

func (c *cli) run(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		resp, err := c.client.ListMeetings(ctx, &grpcx.ListMeetingsRequest{})
		if err != nil {
			return err
		}
		renderMeetings(c.out, resp.Items)
	case "create":
		resp, err := c.client.CreateMeeting(ctx, &grpcx.CreateMeetingRequest{HostID: c.user})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "created meeting %d, room code %s\n", resp.Meeting.ID, color.Green.Sprint(resp.Meeting.RoomCode))
	case "join-code":
		if len(rest) != 1 {
			return errUsage
		}
		resp, err := c.client.GetMeetingByCode(ctx, &grpcx.MeetingByCodeRequest{Code: strings.ToUpper(rest[0]), Strict: c.strict})
		if err != nil {
			return err
		}
		renderMeetings(c.out, []domain.Meeting{*resp.Meeting})
	case "roster":
		id, err := meetingArg(rest, 1)
		if err != nil {
			return err
		}
		resp, err := c.client.ListParticipants(ctx, &grpcx.MeetingRequest{ID: id})
		if err != nil {
			return err
		}
		renderRoster(c.out, resp.Items)
	case "chat":
		id, err := meetingArg(rest, 1)
		if err != nil {
			return err
		}
		resp, err := c.client.ListMessages(ctx, &grpcx.MeetingRequest{ID: id})
		if err != nil {
			return err
		}
		renderMessages(c.out, resp.Items)
	case "say":
		id, err := meetingArg(rest, 2)
		if err != nil {
			return err
		}
		resp, err := c.client.SendMessage(ctx, &grpcx.SendMessageRequest{
			MeetingID: id,
			Message:   domain.ChatMessage{SenderID: c.user, SenderName: c.user, Content: strings.Join(rest[1:], " ")},
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "sent message %d\n", resp.Message.ID)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
	return nil
}

func meetingArg(args []string, minLen int) (int64, error) {
	if len(args) < minLen {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("meeting id %q: %w", args[0], errUsage)
	}
	return id, nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	return table
}

func renderMeetings(w io.Writer, items []domain.Meeting) {
	table := newTable(w, []string{"ID", "Code", "Host", "Participants", "Started", "Active", "Demo"})
	for _, m := range items {
		active := color.Green.Sprint("yes")
		if !m.IsActive {
			active = color.Gray.Sprint("no")
		}
		table.Append([]string{
			strconv.FormatInt(m.ID, 10),
			m.RoomCode,
			m.HostID,
			strconv.Itoa(len(m.Participants)),
			m.StartTime.Format("2006-01-02 15:04"),
			active,
			strconv.FormatBool(m.Demo),
		})
	}
	table.Render()
}

func renderRoster(w io.Writer, items []domain.Participant) {
	table := newTable(w, []string{"ID", "Name", "Audio", "Video", "Screen", "Quality", "Joined"})
	for _, p := range items {
		table.Append([]string{
			p.ID,
			p.Name,
			onOff(p.AudioEnabled),
			onOff(p.VideoEnabled),
			onOff(p.IsScreenSharing),
			string(p.ConnectionQuality),
			p.JoinedAt.Format("15:04:05"),
		})
	}
	table.Render()
}

func renderMessages(w io.Writer, items []domain.ChatMessage) {
	table := newTable(w, []string{"Time", "From", "Message"})
	for _, m := range items {
		from := m.SenderName
		if from == "" {
			from = m.SenderID
		}
		if m.Type == domain.MessageSystem {
			from = color.Yellow.Sprint(from)
		}
		table.Append([]string{m.Timestamp.Format("15:04:05"), from, m.Content})
	}
	table.Render()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
