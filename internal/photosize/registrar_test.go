package photosize

import "fmt"

// fakeRegistrar records registrar calls for assertions.
type fakeRegistrar struct {
	nextID     FileID
	registered []RemoteFile
	contents   map[FileID][]byte
	persistent map[string]FileID
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{
		nextID:     100,
		contents:   make(map[FileID][]byte),
		persistent: make(map[string]FileID),
	}
}

func (f *fakeRegistrar) Register(remote RemoteFile) FileID {
	f.nextID++
	f.registered = append(f.registered, remote)
	return f.nextID
}

func (f *fakeRegistrar) SetContent(id FileID, data []byte) {
	f.contents[id] = data
}

func (f *fakeRegistrar) FromPersistentID(persistentID string, role FileRole) (FileID, error) {
	if id, ok := f.persistent[persistentID]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown persistent ID %q", persistentID)
}
