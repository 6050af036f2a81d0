package postgres

const (
	queryLockMeeting = `SELECT pg_advisory_xact_lock($1)`

	meetingColumns = `id, room_code, host_id, participants, start_time, is_active, demo`

	queryCreateMeeting = `
		INSERT INTO meetings (room_code, host_id, participants, start_time, is_active, demo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	queryGetMeeting       = `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`
	queryGetMeetingByCode = `SELECT ` + meetingColumns + ` FROM meetings WHERE room_code = $1 ORDER BY id LIMIT 1`
	queryListMeetings     = `SELECT ` + meetingColumns + ` FROM meetings ORDER BY id`
	queryUpdateMeeting    = `
		UPDATE meetings
		SET host_id      = COALESCE($2, host_id),
		    participants = COALESCE($3, participants),
		    is_active    = COALESCE($4, is_active)
		WHERE id = $1
		RETURNING ` + meetingColumns
	queryDeleteMeeting = `DELETE FROM meetings WHERE id = $1`

	participantColumns = `id, meeting_id, name, audio_enabled, video_enabled, is_screen_sharing, connection_quality, joined_at`

	queryAddParticipant = `
		INSERT INTO meeting_participants (meeting_id, id, name, audio_enabled, video_enabled, is_screen_sharing, connection_quality, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	queryListParticipants  = `SELECT ` + participantColumns + ` FROM meeting_participants WHERE meeting_id = $1 ORDER BY seq`
	queryRemoveParticipant = `
		DELETE FROM meeting_participants
		WHERE seq = (
			SELECT seq FROM meeting_participants
			WHERE meeting_id = $1 AND id = $2
			ORDER BY seq LIMIT 1
		)`
	queryUpdateParticipant = `
		UPDATE meeting_participants
		SET name               = COALESCE($3, name),
		    audio_enabled      = COALESCE($4, audio_enabled),
		    video_enabled      = COALESCE($5, video_enabled),
		    is_screen_sharing  = COALESCE($6, is_screen_sharing),
		    connection_quality = COALESCE($7, connection_quality)
		WHERE seq = (
			SELECT seq FROM meeting_participants
			WHERE meeting_id = $1 AND id = $2
			ORDER BY seq LIMIT 1
		)
		RETURNING ` + participantColumns

	messageColumns = `id, meeting_id, sender_id, sender_name, content, created_at, type, demo`

	querySaveMessage = `
		INSERT INTO meeting_messages (meeting_id, sender_id, sender_name, content, type, demo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	queryMarkSeeded    = `INSERT INTO meeting_chat_seeds (meeting_id) VALUES ($1) ON CONFLICT DO NOTHING`
	queryListMessages  = `SELECT ` + messageColumns + ` FROM meeting_messages WHERE meeting_id = $1 ORDER BY created_at, id`
	queryDeleteMessage = `DELETE FROM meeting_messages WHERE meeting_id = $1 AND id = $2 AND NOT demo`
)
